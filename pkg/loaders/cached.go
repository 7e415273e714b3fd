package loaders

import (
	"context"
	"time"

	"github.com/dmitrymomot/translations"
	"github.com/dmitrymomot/translations/pkg/cache"
)

// Cached wraps a loader with a read-through cache.
// Concurrent misses for the same namespace share one call to next.
// Namespaces that next reports as missing are not cached.
func Cached(next translations.NamespaceLoader, c cache.Cache, ttl time.Duration) translations.NamespaceLoader {
	return func(ctx context.Context, locale, namespace string) (translations.Record, error) {
		return cache.GetOrSet(ctx, c, locale, namespace, func(ctx context.Context) (translations.Record, time.Duration, error) {
			rec, err := next(ctx, locale, namespace)
			return rec, ttl, err
		})
	}
}
