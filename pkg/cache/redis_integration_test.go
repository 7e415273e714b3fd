//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/translations"
	"github.com/dmitrymomot/translations/pkg/cache"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := cache.OpenRedis(ctx, url, cache.WithRetry(1, 100*time.Millisecond))
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedis(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		client := newTestRedisClient(t)
		c := cache.NewRedis(client, cache.WithPrefix("test-roundtrip"))
		ctx := context.Background()
		t.Cleanup(func() { _ = c.Clear(ctx) })

		_, err := c.Get(ctx, "en", "common")
		require.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "en", "common", translations.Record{
			"title": translations.Text("Hello"),
			"user":  translations.Record{"name": translations.Text("Name")},
		}, time.Minute))

		got, err := c.Get(ctx, "en", "common")
		require.NoError(t, err)
		require.Equal(t, translations.Text("Hello"), got["title"])

		has, err := c.Has(ctx, "en", "common")
		require.NoError(t, err)
		require.True(t, has)

		require.NoError(t, c.Delete(ctx, "en", "common"))
		has, err = c.Has(ctx, "en", "common")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()

		client := newTestRedisClient(t)
		c := cache.NewRedis(client, cache.WithPrefix("test-expiry"))
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "en", "common", translations.Record{}, 50*time.Millisecond))
		time.Sleep(100 * time.Millisecond)

		_, err := c.Get(ctx, "en", "common")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("clear only touches the prefix", func(t *testing.T) {
		t.Parallel()

		client := newTestRedisClient(t)
		ctx := context.Background()
		mine := cache.NewRedis(client, cache.WithPrefix("test-clear-mine"))
		other := cache.NewRedis(client, cache.WithPrefix("test-clear-other"))
		t.Cleanup(func() { _ = other.Clear(ctx) })

		require.NoError(t, mine.Set(ctx, "en", "a", translations.Record{}, time.Minute))
		require.NoError(t, other.Set(ctx, "en", "a", translations.Record{}, time.Minute))
		require.NoError(t, mine.Clear(ctx))

		has, _ := mine.Has(ctx, "en", "a")
		require.False(t, has)
		has, _ = other.Has(ctx, "en", "a")
		require.True(t, has)
	})

	t.Run("healthcheck", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, cache.Healthcheck(newTestRedisClient(t))(context.Background()))
	})
}
