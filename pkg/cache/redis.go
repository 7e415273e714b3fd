package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/translations"
)

// Redis is a namespace cache shared between processes.
// Records are serialized with the configured Codec (default: JSONCodec).
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
	sf     singleflight.Group
}

// NewRedis creates a Redis-backed cache. Obtain the client from OpenRedis.
//
// Example:
//
//	client, err := cache.OpenRedis(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis(client,
//	    cache.WithPrefix("translations"),
//	    cache.WithRedisDefaultTTL(30 * time.Minute),
//	)
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o}
}

// Get retrieves a namespace. Returns ErrNotFound if the key does not exist.
func (r *Redis) Get(ctx context.Context, locale, namespace string) (translations.Record, error) {
	data, err := r.client.Get(ctx, r.key(locale, namespace)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.opts.codec.Unmarshal(data)
}

// Set stores a namespace. Redis has no "never expires" TTL distinct from
// zero, so a negative TTL persists the key.
func (r *Redis) Set(ctx context.Context, locale, namespace string, rec translations.Record, ttl time.Duration) error {
	data, err := r.opts.codec.Marshal(rec)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	return r.client.Set(ctx, r.key(locale, namespace), data, max(ttl, 0)).Err()
}

// Delete removes a namespace.
func (r *Redis) Delete(ctx context.Context, locale, namespace string) error {
	return r.client.Del(ctx, r.key(locale, namespace)).Err()
}

// Has checks whether a namespace is cached.
func (r *Redis) Has(ctx context.Context, locale, namespace string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(locale, namespace)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every key under the configured prefix using SCAN, which does
// not block the server. Without a prefix the whole database is flushed.
func (r *Redis) Clear(ctx context.Context) error {
	if r.opts.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.opts.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op. The client lifecycle belongs to the caller.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(locale, namespace string) string {
	if r.opts.prefix == "" {
		return Key(locale, namespace)
	}
	return r.opts.prefix + ":" + Key(locale, namespace)
}

func (r *Redis) flight() *singleflight.Group { return &r.sf }

var _ Cache = (*Redis)(nil)
