package pgstore

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/translations"
)

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	selectNamespaces = `SELECT namespace, key, value FROM translations
WHERE locale = $1 AND namespace = ANY($2)`

	upsertKey = `INSERT INTO translations (locale, namespace, key, value)
VALUES ($1, $2, $3, $4)
ON CONFLICT (locale, namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	deleteNamespace = `DELETE FROM translations WHERE locale = $1 AND namespace = $2`

	listNamespaces = `SELECT DISTINCT namespace FROM translations WHERE locale = $1 ORDER BY namespace`
)

// Store keeps translations in a single table, one row per flattened key.
type Store struct {
	db  DB
	sep string
}

// New creates a store. Nested keys are joined with sep (default ".").
func New(db DB, sep string) *Store {
	if sep == "" {
		sep = translations.DefaultKeysSeparator
	}
	return &Store{db: db, sep: sep}
}

// Loader returns a multi-namespace loader backed by one query per call.
// Namespaces without rows are absent from the result.
func (s *Store) Loader() translations.NamespacesLoader {
	return s.Load
}

// Load reads the requested namespaces of a locale.
func (s *Store) Load(ctx context.Context, locale string, namespaces []string) (map[string]translations.Record, error) {
	if len(namespaces) == 0 {
		return map[string]translations.Record{}, nil
	}

	rows, err := s.db.Query(ctx, selectNamespaces, locale, namespaces)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	flat := make(map[string]map[string]string)
	var namespace, key, value string
	_, err = pgx.ForEachRow(rows, []any{&namespace, &key, &value}, func() error {
		if flat[namespace] == nil {
			flat[namespace] = make(map[string]string)
		}
		flat[namespace][key] = value
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	out := make(map[string]translations.Record, len(flat))
	for ns, keys := range flat {
		out[ns] = translations.Unflatten(keys, s.sep)
	}
	return out, nil
}

// Put upserts the literal leaves of rec. Keys not present in rec are kept.
func (s *Store) Put(ctx context.Context, locale, namespace string, rec translations.Record) error {
	if locale == "" || namespace == "" {
		return ErrInvalidArgument
	}
	return WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return s.upsert(ctx, tx, locale, namespace, rec)
	})
}

// Replace swaps the stored namespace for rec in one transaction.
func (s *Store) Replace(ctx context.Context, locale, namespace string, rec translations.Record) error {
	if locale == "" || namespace == "" {
		return ErrInvalidArgument
	}
	return WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteNamespace, locale, namespace); err != nil {
			return errors.Join(ErrQueryFailed, err)
		}
		return s.upsert(ctx, tx, locale, namespace, rec)
	})
}

// Delete removes a namespace of a locale.
func (s *Store) Delete(ctx context.Context, locale, namespace string) error {
	if _, err := s.db.Exec(ctx, deleteNamespace, locale, namespace); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

// Namespaces lists the namespaces stored for a locale, sorted.
func (s *Store) Namespaces(ctx context.Context, locale string) ([]string, error) {
	rows, err := s.db.Query(ctx, listNamespaces, locale)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return names, nil
}

func (s *Store) upsert(ctx context.Context, tx pgx.Tx, locale, namespace string, rec translations.Record) error {
	flat := rec.Flatten(s.sep)
	if len(flat) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		batch.Queue(upsertKey, locale, namespace, key, flat[key])
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}
