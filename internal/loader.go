package internal

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Loader fetches missing namespaces through the canonical LoadFunc and writes
// the results into the store.
//
// Identical requests in flight at the same time (same locale, same set of
// missing namespaces) share a single loader call. The shared call outlives
// any single caller's context, so a canceled caller does not fail the others.
type Loader struct {
	store  *Store
	load   LoadFunc
	logger *slog.Logger
	loaded LoadedFunc
	group  singleflight.Group
}

// LoadedFunc is notified once per loader call that wrote namespaces.
type LoadedFunc func(ctx context.Context, locale string, namespaces []string)

// NewLoader creates a loader writing into store. loaded may be nil.
func NewLoader(store *Store, load LoadFunc, logger *slog.Logger, loaded LoadedFunc) *Loader {
	return &Loader{store: store, load: load, logger: logger, loaded: loaded}
}

type loadResult struct {
	namespaces []string
	ok         bool
}

// Load loads the namespaces that are not stored yet for the locale.
// It returns true when everything requested is available or the loader
// produced a result, and false when the loader is missing or failed.
// The returned slice lists the namespaces written by the loader call this
// request ran or joined. A caller whose ctx is done returns false at once while
// the shared call carries on.
func (l *Loader) Load(ctx context.Context, locale string, namespaces []string) ([]string, bool) {
	locale = normalize(locale)

	missing := l.store.Missing(locale, namespaces)
	if len(missing) == 0 {
		return nil, true
	}

	key := locale + "\x00" + strings.Join(slices.Sorted(slices.Values(missing)), "\x00")

	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		res := l.fetch(shared, locale, missing)
		if len(res.namespaces) > 0 && l.loaded != nil {
			l.loaded(shared, locale, res.namespaces)
		}
		return res, nil
	})

	select {
	case r := <-ch:
		res := r.Val.(loadResult)
		return res.namespaces, res.ok
	case <-ctx.Done():
		return nil, false
	}
}

func (l *Loader) fetch(ctx context.Context, locale string, namespaces []string) loadResult {
	result, err := l.load(ctx, locale, namespaces)
	if err != nil {
		if errors.Is(err, ErrNoLoader) {
			l.logger.ErrorContext(ctx, "translations: cannot load namespaces without a loader",
				slog.String("locale", locale),
				slog.Any("namespaces", namespaces),
			)
		} else {
			l.logger.ErrorContext(ctx, "translations: failed to load namespaces",
				slog.String("locale", locale),
				slog.Any("namespaces", namespaces),
				slog.String("error", err.Error()),
			)
		}
		return loadResult{}
	}
	if result == nil {
		return loadResult{}
	}

	loaded := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		rec, ok := result[ns]
		if !ok || rec == nil {
			l.logger.DebugContext(ctx, "translations: loader returned no data for namespace",
				slog.String("locale", locale),
				slog.String("namespace", ns),
			)
			continue
		}
		l.store.Add(locale, ns, rec)
		loaded = append(loaded, ns)
	}

	return loadResult{namespaces: loaded, ok: true}
}
