package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/translations"
)

// Cache stores translation namespaces per locale.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: entry never expires
type Cache interface {
	// Get retrieves a namespace.
	// Returns ErrNotFound if it is not cached or has expired.
	Get(ctx context.Context, locale, namespace string) (translations.Record, error)

	// Set stores a namespace with the given TTL.
	Set(ctx context.Context, locale, namespace string, rec translations.Record, ttl time.Duration) error

	// Delete removes a namespace.
	Delete(ctx context.Context, locale, namespace string) error

	// Has checks whether a namespace is cached and has not expired.
	Has(ctx context.Context, locale, namespace string) (bool, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

// Key returns the storage key of a namespace: "{locale}/{namespace}".
func Key(locale, namespace string) string {
	return locale + "/" + namespace
}

// Codec serializes namespaces for backends that store bytes (Redis).
type Codec interface {
	Marshal(rec translations.Record) ([]byte, error)
	Unmarshal(data []byte) (translations.Record, error)
}

// JSONCodec stores records as plain JSON. Function translations cannot be
// serialized and are dropped.
type JSONCodec struct{}

func (JSONCodec) Marshal(rec translations.Record) ([]byte, error) {
	data, err := json.Marshal(rec.Plain())
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte) (translations.Record, error) {
	var plain map[string]any
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	if plain == nil {
		plain = map[string]any{}
	}
	return translations.RecordFrom(plain), nil
}

// flighter is implemented by backends that coalesce concurrent misses.
// Each cache owns its own group, so two caches never share a load.
type flighter interface {
	flight() *singleflight.Group
}

// GetOrSet returns the cached namespace, or calls fn to load it on a miss.
// Concurrent misses for the same namespace on the same Memory or Redis cache
// share a single fn call. Other Cache implementations call fn every time.
//
// The shared call is not canceled when one waiting caller gives up; each
// caller returns ctx.Err() when its own context is done.
//
// fn returns the record, a TTL for caching, and an error. Errors and nil
// records are not cached.
func GetOrSet(ctx context.Context, c Cache, locale, namespace string, fn func(ctx context.Context) (translations.Record, time.Duration, error)) (translations.Record, error) {
	// Fast path: try cache first.
	if rec, err := c.Get(ctx, locale, namespace); err == nil {
		return rec, nil
	}

	load := func(ctx context.Context) (translations.Record, error) {
		rec, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			// Best effort.
			_ = c.Set(ctx, locale, namespace, rec, ttl)
		}
		return rec, nil
	}

	f, ok := c.(flighter)
	if !ok {
		return load(ctx)
	}

	// Slow path: deduplicate concurrent misses.
	shared := context.WithoutCancel(ctx)
	ch := f.flight().DoChan(Key(locale, namespace), func() (any, error) {
		return load(shared)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		rec, _ := res.Val.(translations.Record)
		return rec, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
