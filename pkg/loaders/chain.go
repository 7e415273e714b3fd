package loaders

import (
	"context"

	"github.com/dmitrymomot/translations"
)

// Chain returns a loader that asks each loader in turn and returns the
// first non-nil record. An error stops the chain.
func Chain(loaders ...translations.NamespaceLoader) translations.NamespaceLoader {
	return func(ctx context.Context, locale, namespace string) (translations.Record, error) {
		for _, load := range loaders {
			if load == nil {
				continue
			}
			rec, err := load(ctx, locale, namespace)
			if err != nil {
				return nil, err
			}
			if rec != nil {
				return rec, nil
			}
		}
		return nil, nil
	}
}
