package internal_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/translations/internal"
	"github.com/dmitrymomot/translations/pkg/logger"
)

func TestLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := logger.NewNope()

	t.Run("stores what the loader returns", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		var requested []string
		l := internal.NewLoader(store, func(_ context.Context, _ string, nss []string) (map[string]internal.Record, error) {
			requested = nss
			return map[string]internal.Record{
				"a": {"x": internal.Text("X")},
			}, nil
		}, log, nil)

		loaded, ok := l.Load(ctx, "EN", []string{"a", "b", "a"})
		require.True(t, ok)
		require.Equal(t, []string{"a", "b"}, requested)
		require.Equal(t, []string{"a"}, loaded)
		assert.True(t, store.HasNamespace("en", "a"))
		assert.False(t, store.HasNamespace("en", "b"))
	})

	t.Run("already stored namespaces are not requested again", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		store.Add("en", "a", internal.Record{})
		var calls atomic.Int32
		l := internal.NewLoader(store, func(context.Context, string, []string) (map[string]internal.Record, error) {
			calls.Add(1)
			return nil, nil
		}, log, nil)

		loaded, ok := l.Load(ctx, "en", []string{"a"})
		require.True(t, ok)
		require.Nil(t, loaded)
		require.Zero(t, calls.Load())
	})

	t.Run("missing loader", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		l := internal.NewLoader(store, func(context.Context, string, []string) (map[string]internal.Record, error) {
			return nil, internal.ErrNoLoader
		}, log, nil)

		loaded, ok := l.Load(ctx, "en", []string{"a"})
		require.False(t, ok)
		require.Empty(t, loaded)
	})

	t.Run("loader error leaves the store untouched", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		l := internal.NewLoader(store, func(context.Context, string, []string) (map[string]internal.Record, error) {
			return map[string]internal.Record{"a": {}}, errors.New("unavailable")
		}, log, nil)

		_, ok := l.Load(ctx, "en", []string{"a"})
		require.False(t, ok)
		require.False(t, store.HasNamespace("en", "a"))
	})

	t.Run("nil result is a failure", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		l := internal.NewLoader(store, func(context.Context, string, []string) (map[string]internal.Record, error) {
			return nil, nil
		}, log, nil)

		_, ok := l.Load(ctx, "en", []string{"a"})
		require.False(t, ok)
	})

	t.Run("concurrent identical requests share one call", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		var calls atomic.Int32
		started := make(chan struct{})
		release := make(chan struct{})
		l := internal.NewLoader(store, func(context.Context, string, []string) (map[string]internal.Record, error) {
			if calls.Add(1) == 1 {
				close(started)
			}
			<-release
			return map[string]internal.Record{"a": {"x": internal.Text("X")}, "b": {}}, nil
		}, log, nil)

		var wg sync.WaitGroup
		results := make([]bool, 4)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[0] = l.Load(ctx, "en", []string{"a", "b"})
		}()
		<-started
		for i := 1; i < len(results); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = l.Load(ctx, "en", []string{"b", "a"})
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		for _, ok := range results {
			require.True(t, ok)
		}
		require.True(t, store.HasNamespace("en", "a"))
	})

	t.Run("canceled caller does not fail joined callers", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		entered := make(chan struct{})
		release := make(chan struct{})
		l := internal.NewLoader(store, func(ctx context.Context, _ string, _ []string) (map[string]internal.Record, error) {
			close(entered)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return map[string]internal.Record{"a": {"x": internal.Text("X")}, "b": {}}, nil
		}, log, nil)

		first, cancel := context.WithCancel(context.Background())
		firstOK := make(chan bool, 1)
		go func() {
			_, ok := l.Load(first, "en", []string{"a", "b"})
			firstOK <- ok
		}()
		<-entered

		secondOK := make(chan bool, 1)
		go func() {
			_, ok := l.Load(context.Background(), "en", []string{"a", "b"})
			secondOK <- ok
		}()
		time.Sleep(20 * time.Millisecond)

		cancel()
		require.False(t, <-firstOK)
		close(release)

		require.True(t, <-secondOK)
		require.True(t, store.HasNamespace("en", "a"))
	})

	t.Run("joined callers are notified once", func(t *testing.T) {
		t.Parallel()
		store := internal.NewStore(".", nil)
		release := make(chan struct{})
		var notified atomic.Int32
		l := internal.NewLoader(store, func(context.Context, string, []string) (map[string]internal.Record, error) {
			<-release
			return map[string]internal.Record{"a": {}}, nil
		}, log, func(_ context.Context, locale string, namespaces []string) {
			assert.Equal(t, "en", locale)
			assert.Equal(t, []string{"a"}, namespaces)
			notified.Add(1)
		})

		var wg sync.WaitGroup
		for range 5 {
			wg.Go(func() {
				_, ok := l.Load(ctx, "en", []string{"a"})
				assert.True(t, ok)
			})
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), notified.Load())
	})
}
