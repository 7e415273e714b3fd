package loaders

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/dmitrymomot/translations"
)

// FS returns a loader that reads namespaces from an fs.FS.
// The fs.FS root must contain locale directories directly.
// File convention: {locale}/{namespace}.json, .yaml or .yml,
// tried in that order.
//
// Example structure:
//
//	en/common.json
//	en/errors.yaml
//	fr/common.yml
//
// A namespace without a file yields no data and no error.
func FS(fsys fs.FS) translations.NamespaceLoader {
	return func(ctx context.Context, locale, namespace string) (translations.Record, error) {
		for _, ext := range Extensions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			name := path.Join(locale, namespace+ext)
			data, err := fs.ReadFile(fsys, name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading %q: %w", name, err)
			}
			return decode(name, data)
		}
		return nil, nil
	}
}
