// Command translations-server serves translations over HTTP.
//
// The engine loads namespaces from a file tree, an HTTP origin, an S3 bucket
// or PostgreSQL, optionally through a memory or Redis cache, and keeps the
// fallback locales warm on a cron schedule. See Config for the environment.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/translations"
	"github.com/dmitrymomot/translations/pkg/job"
	"github.com/dmitrymomot/translations/pkg/logger"
	"github.com/dmitrymomot/translations/pkg/server"
)

func main() {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		slog.Error("failed to parse configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.NewFromConfig(cfg.Log, logger.ContextAttrs)
	slog.SetDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	d := &deps{checks: make(map[string]server.CheckFunc)}
	shutdown := func() {
		for _, fn := range d.closers {
			_ = fn(context.Background())
		}
	}

	init, err := engineInit(cfg, log)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg, d)
	if err != nil {
		shutdown()
		return err
	}
	if err := wireLoader(ctx, cfg, &init, c, log, d); err != nil {
		shutdown()
		return err
	}

	tr := translations.New(init)
	tr.On(translations.EventNamespacesLoaded, func(e translations.Event) {
		log.Info("namespaces loaded",
			slog.String("locale", e.Locale),
			slog.Any("namespaces", e.Namespaces),
		)
	})
	tr.On(translations.EventLocaleUpdated, func(e translations.Event) {
		log.Info("locale updated", slog.String("locale", e.Locale))
	})
	if _, err := tr.Init(ctx); err != nil {
		shutdown()
		return err
	}

	scheduler, err := job.NewManager(
		job.WithLogger(log),
		job.WithRunOnStart(),
		job.WithSchedule("preload_fallbacks", cfg.PreloadSchedule, func(ctx context.Context) error {
			if !tr.PreloadFallbacks(ctx) {
				log.WarnContext(ctx, "some fallback namespaces failed to load")
			}
			return nil
		}),
	)
	if err != nil {
		shutdown()
		return err
	}
	if err := scheduler.Start(ctx); err != nil {
		shutdown()
		return err
	}

	opts := []server.Option{server.WithLogger(log)}
	for name, check := range d.checks {
		opts = append(opts, server.WithCheck(name, check))
	}
	srv := server.New(tr, opts...)

	hooks := append([]server.ShutdownHook{scheduler.Shutdown()}, d.closers...)
	return srv.Run(ctx, cfg.Addr, cfg.ShutdownTimeout, hooks...)
}
