// Package pgstore keeps translations in PostgreSQL and serves them to the
// translations engine as a multi-namespace loader.
//
// Every translation is one row of the translations table keyed by
// (locale, namespace, key), where key is the nested path joined with the
// configured separator. Function translations cannot be stored.
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL
//	DATABASE_MIGRATIONS_TABLE   - goose table (default: translations_migrations)
//	DATABASE_KEYS_SEPARATOR     - nested key separator (default: ".")
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//
// # Usage
//
//	pool, err := pgstore.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pgstore.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	store := pgstore.New(pool, cfg.KeysSeparator)
//	tr, err := translations.Create(ctx, translations.Init{
//		LoadNamespaces: store.Loader(),
//	})
//
// Put upserts keys, Replace swaps a whole namespace, Delete removes one.
package pgstore
