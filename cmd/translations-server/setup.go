package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/translations"
	"github.com/dmitrymomot/translations/pkg/cache"
	"github.com/dmitrymomot/translations/pkg/loaders"
	"github.com/dmitrymomot/translations/pkg/pgstore"
	"github.com/dmitrymomot/translations/pkg/server"
)

// deps holds what setup opened; closers run on shutdown in order.
type deps struct {
	checks  map[string]server.CheckFunc
	closers []server.ShutdownHook
}

func (d *deps) onClose(fn server.ShutdownHook) {
	d.closers = append(d.closers, fn)
}

// engineInit builds the engine configuration from the config file, if any,
// overridden by the environment.
func engineInit(cfg Config, log *slog.Logger) (translations.Init, error) {
	var init translations.Init
	if cfg.ConfigFile != "" {
		parsed, err := translations.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return init, err
		}
		init = parsed
	}

	if len(init.Locales) == 0 {
		init.Locales = translations.Locales(cfg.Locales...)
	}
	if cfg.Locale != "" {
		init.Locale = cfg.Locale
	}
	if len(cfg.Namespaces) > 0 {
		init.Namespaces.Default = cfg.Namespaces[0]
		init.Namespaces.Required = cfg.Namespaces[1:]
	}
	init.Logger = log
	return init, nil
}

// openCache returns nil for CacheNone.
func openCache(ctx context.Context, cfg Config, d *deps) (cache.Cache, error) {
	switch cfg.Cache {
	case CacheNone, "":
		return nil, nil
	case CacheMemory:
		c := cache.NewMemory(cache.WithDefaultTTL(cfg.CacheTTL))
		d.onClose(func(context.Context) error { return c.Close() })
		return c, nil
	case CacheRedis:
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		d.checks["redis"] = cache.Healthcheck(client)
		d.onClose(func(context.Context) error { return client.Close() })
		return cache.NewRedis(client, cache.WithRedisDefaultTTL(cfg.CacheTTL)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache)
	}
}

// wireLoader sets the engine loader for the configured source.
func wireLoader(ctx context.Context, cfg Config, init *translations.Init, c cache.Cache, log *slog.Logger, d *deps) error {
	var load translations.NamespaceLoader

	switch cfg.Source {
	case SourceFS:
		load = loaders.FS(os.DirFS(cfg.Dir))
	case SourceHTTP:
		if cfg.BaseURL == "" {
			return fmt.Errorf("%w: TRANSLATIONS_BASE_URL is required", loaders.ErrInvalidConfig)
		}
		load = loaders.HTTP(cfg.BaseURL)
	case SourceS3:
		s3Load, err := loaders.S3(cfg.S3)
		if err != nil {
			return err
		}
		load = s3Load
	case SourcePostgres:
		pool, err := pgstore.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		d.checks["postgres"] = pgstore.Healthcheck(pool)
		d.onClose(func(context.Context) error { pool.Close(); return nil })

		if err := pgstore.Migrate(ctx, pool, cfg.DB.MigrationsTable, log); err != nil {
			return err
		}
		store := pgstore.New(pool, cfg.DB.KeysSeparator)
		if c == nil {
			// One query per batch of namespaces.
			init.LoadNamespaces = store.Loader()
			return nil
		}
		load = func(ctx context.Context, locale, namespace string) (translations.Record, error) {
			found, err := store.Load(ctx, locale, []string{namespace})
			return found[namespace], err
		}
	default:
		return fmt.Errorf("unknown translations source %q", cfg.Source)
	}

	if c != nil {
		load = loaders.Cached(load, c, cfg.CacheTTL)
	}
	init.LoadNamespace = load
	return nil
}
