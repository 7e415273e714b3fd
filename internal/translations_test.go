package internal_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/translations/internal"
	"github.com/dmitrymomot/translations/pkg/logger"
)

// memoryLoader serves namespaces from a fixed dataset and counts calls per namespace.
type memoryLoader struct {
	data  map[string]map[string]internal.Record
	calls map[string]int
	mu    sync.Mutex
}

func newMemoryLoader(data map[string]map[string]internal.Record) *memoryLoader {
	return &memoryLoader{data: data, calls: make(map[string]int)}
}

func (m *memoryLoader) load(_ context.Context, locale, ns string) (internal.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[locale+"/"+ns]++
	return m.data[locale][ns], nil
}

func (m *memoryLoader) count(locale, ns string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[locale+"/"+ns]
}

var loaderData = map[string]map[string]internal.Record{
	"en": {
		"translations": {"hello": internal.Text("Hello")},
		"auth":         {"login": internal.Text("Login")},
	},
	"fr": {
		"translations": {"hello": internal.Text("Bonjour")},
		"auth":         {"login": internal.Text("Connexion")},
	},
}

func TestTranslationsLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("T before init returns the key", func(t *testing.T) {
		t.Parallel()
		tr := internal.New(internal.Init{Logger: logger.NewNope()})
		require.False(t, tr.IsInitialized())
		require.Equal(t, "ns:some.key", tr.T("ns:some.key"))
		require.Nil(t, tr.Locales())
		require.Equal(t, internal.LocaleRejected, tr.SwitchLocaleSync("fr"))
		require.False(t, tr.RegisterTranslations("en", "ns", internal.Record{}))
	})

	t.Run("init returns configuration errors", func(t *testing.T) {
		t.Parallel()
		_, err := internal.CreateSync(internal.Init{
			Logger:  logger.NewNope(),
			Locales: []internal.LocaleInit{{}},
		})
		require.ErrorIs(t, err, internal.ErrInvalidLocaleDefinition)
	})

	t.Run("create loads required namespaces of the initial locale", func(t *testing.T) {
		t.Parallel()
		loader := newMemoryLoader(loaderData)
		tr, err := internal.Create(ctx, internal.Init{
			Logger:        logger.NewNope(),
			Locales:       internal.Locales("en", "fr"),
			Namespaces:    internal.NamespacesInit{Required: []string{"auth"}},
			LoadNamespace: loader.load,
		})
		require.NoError(t, err)
		assert.Equal(t, "Hello", tr.T("hello"))
		assert.Equal(t, "Login", tr.T("auth:login"))
		assert.Equal(t, 1, loader.count("en", "auth"))
		assert.Zero(t, loader.count("fr", "auth"))
	})

	t.Run("create sync never calls the loader", func(t *testing.T) {
		t.Parallel()
		loader := newMemoryLoader(loaderData)
		tr, err := internal.CreateSync(internal.Init{
			Logger:        logger.NewNope(),
			Locales:       internal.Locales("en"),
			LoadNamespace: loader.load,
		})
		require.NoError(t, err)
		assert.Equal(t, "Hello", tr.T("hello"), "prettykey of the missing key")
		assert.Zero(t, loader.count("en", "translations"))
	})

	t.Run("init twice is a no-op", func(t *testing.T) {
		t.Parallel()
		var fired atomic.Int32
		tr := internal.New(internal.Init{Logger: logger.NewNope()})
		_, err := tr.InitSync(func(internal.Event) { fired.Add(1) })
		require.NoError(t, err)
		_, err = tr.InitSync(func(internal.Event) { fired.Add(1) })
		require.NoError(t, err)
		require.Equal(t, int32(1), fired.Load())
	})

	t.Run("concurrent init waits for the first load", func(t *testing.T) {
		t.Parallel()
		entered := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		tr := internal.New(internal.Init{
			Logger:  logger.NewNope(),
			Locales: internal.Locales("en"),
			LoadNamespace: func(_ context.Context, _, ns string) (internal.Record, error) {
				once.Do(func() { close(entered) })
				<-release
				return loaderData["en"][ns], nil
			},
		})

		go func() { _, _ = tr.Init(ctx) }()
		<-entered

		second := make(chan struct{})
		go func() {
			_, err := tr.Init(ctx)
			assert.NoError(t, err)
			close(second)
		}()

		select {
		case <-second:
			t.Fatal("second Init returned before the first finished loading")
		case <-time.After(20 * time.Millisecond):
		}

		close(release)
		<-second
		assert.Equal(t, "Hello", tr.T("hello"))
	})

	t.Run("registering while initializing is safe", func(t *testing.T) {
		t.Parallel()
		tr := internal.New(internal.Init{Logger: logger.NewNope(), Locales: internal.Locales("en")})

		var wg sync.WaitGroup
		wg.Go(func() {
			for range 100 {
				tr.RegisterTranslations("en", "extra", internal.Record{"k": internal.Text("v")})
			}
		})
		_, err := tr.InitSync()
		require.NoError(t, err)
		wg.Wait()

		require.True(t, tr.RegisterTranslations("en", "extra", internal.Record{"k": internal.Text("v")}))
		assert.Equal(t, "v", tr.T("extra:k"))
	})

	t.Run("seeded data beats loaded data", func(t *testing.T) {
		t.Parallel()
		loader := newMemoryLoader(loaderData)
		tr, err := internal.Create(ctx, internal.Init{
			Logger:  logger.NewNope(),
			Locales: internal.Locales("en"),
			Translations: map[string]map[string]internal.Record{
				"en": {"translations": {"hello": internal.Text("Howdy")}},
			},
			LoadNamespace: loader.load,
		})
		require.NoError(t, err)
		assert.Equal(t, "Howdy", tr.T("hello"))
		assert.Zero(t, loader.count("en", "translations"), "seeded namespace is not loaded again")
	})
}

func TestSwitchLocale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sync switch", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, internal.Init{
			Locales: internal.Locales("en", "fr"),
			Translations: map[string]map[string]internal.Record{
				"en": {"ns": {"hello": internal.Text("Hello")}},
				"fr": {"ns": {"hello": internal.Text("Bonjour")}},
			},
		})

		require.Equal(t, "Hello", tr.T("ns:hello"))
		require.Equal(t, internal.LocaleSwitched, tr.SwitchLocaleSync("fr"))
		require.Equal(t, "fr", tr.Locale())
		require.Equal(t, "Bonjour", tr.T("ns:hello"))
	})

	t.Run("sentinels", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, internal.Init{Locales: internal.Locales("en", "fr")})
		assert.Equal(t, internal.LocaleUnchanged, tr.SwitchLocaleSync("en"))
		assert.Equal(t, internal.LocaleUnchanged, tr.SwitchLocaleSync(" EN "))
		assert.Equal(t, internal.LocaleRejected, tr.SwitchLocaleSync("de"))
		assert.Equal(t, "en", tr.Locale())
		assert.Equal(t, "switched", internal.LocaleSwitched.String())
	})

	t.Run("async switch loads before flipping", func(t *testing.T) {
		t.Parallel()
		loader := newMemoryLoader(loaderData)
		tr, err := internal.Create(ctx, internal.Init{
			Logger:        logger.NewNope(),
			Locales:       internal.Locales("en", "fr"),
			LoadNamespace: loader.load,
		})
		require.NoError(t, err)

		var seen string
		tr.On(internal.EventLocaleUpdated, func(e internal.Event) {
			seen = tr.T("hello")
			assert.Equal(t, "fr", e.Locale)
			assert.Equal(t, "en", e.PreviousLocale)
		})

		require.Equal(t, internal.LocaleSwitched, tr.SwitchLocale(ctx, "fr"))
		assert.Equal(t, "Bonjour", seen)
		assert.Equal(t, 1, loader.count("fr", "translations"))
	})
}

func TestRequireAndDropNamespaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("required namespace becomes available once loaded", func(t *testing.T) {
		t.Parallel()
		started := make(chan struct{})
		release := make(chan struct{})
		tr, err := internal.Create(ctx, internal.Init{
			Logger:      logger.NewNope(),
			Locales:     internal.Locales("en"),
			InvalidKeys: internal.InvalidKeysInit{NotFound: "rawkey"},
			Translations: map[string]map[string]internal.Record{
				"en": {"translations": {}},
			},
			LoadNamespace: func(_ context.Context, locale, ns string) (internal.Record, error) {
				close(started)
				<-release
				return loaderData[locale][ns], nil
			},
		})
		require.NoError(t, err)

		done := make(chan bool)
		go func() { done <- tr.RequireNamespaces(ctx, "auth") }()

		<-started
		assert.Equal(t, "login", tr.T("auth:login"))
		close(release)
		require.True(t, <-done)
		assert.Equal(t, "Login", tr.T("auth:login"))
		assert.Equal(t, []string{"translations", "auth"}, tr.RequiredNamespaces())
	})

	t.Run("dropped namespace is not loaded for a new locale", func(t *testing.T) {
		t.Parallel()
		loader := newMemoryLoader(loaderData)
		tr, err := internal.Create(ctx, internal.Init{
			Logger:        logger.NewNope(),
			Locales:       internal.Locales("en", "fr"),
			LoadNamespace: loader.load,
		})
		require.NoError(t, err)

		require.True(t, tr.RequireNamespace(ctx, "auth"))
		require.Equal(t, 1, loader.count("en", "auth"))

		tr.DropNamespaces("auth")
		require.Equal(t, internal.LocaleSwitched, tr.SwitchLocale(ctx, "fr"))

		assert.Zero(t, loader.count("fr", "auth"))
		assert.Equal(t, 1, loader.count("fr", "translations"))

		raw, ok := tr.Raw("en", "auth", "login")
		require.True(t, ok)
		assert.Equal(t, "Login", raw.Render(nil))
		assert.Contains(t, tr.Namespaces(), "auth")
	})

	t.Run("missing loader degrades to not found", func(t *testing.T) {
		t.Parallel()
		tr, err := internal.Create(ctx, internal.Init{
			Logger:  logger.NewNope(),
			Locales: internal.Locales("en"),
		})
		require.NoError(t, err)
		assert.False(t, tr.RequireNamespace(ctx, "auth"))
		assert.Equal(t, "Login", tr.T("auth:login"))
	})
}

func TestRegisterAndInspect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tr := seeded(t, internal.Init{
		Locales:    internal.Locales("en", "fr"),
		Namespaces: internal.NamespacesInit{Default: "common"},
	})

	require.True(t, tr.RegisterTranslations("en", "common", internal.Record{"a": internal.Text("A")}))
	require.False(t, tr.RegisterTranslations("de", "common", internal.Record{"a": internal.Text("A")}))
	require.True(t, tr.RegisterNamespaces("FR", map[string]internal.Record{
		"common": {"a": internal.Text("Á")},
		"extra":  {"b": internal.Record{"c": internal.Text("C")}},
	}))

	assert.Equal(t, "common", tr.DefaultNamespace())
	assert.Equal(t, []string{"en", "fr"}, tr.Locales())
	assert.Equal(t, []string{"common", "extra"}, tr.Namespaces())

	def, ok := tr.LocaleDefinition("fr")
	require.True(t, ok)
	assert.Equal(t, []string{"en"}, def.Fallback)

	snap, ok := tr.Snapshot("fr", "extra")
	require.True(t, ok)
	require.Contains(t, snap, "b.c")

	_, ok = tr.Raw("en", "common", "missing")
	assert.False(t, ok)

	assert.False(t, tr.LoadNamespace(ctx, "de", "common"), "unknown locale")
	assert.True(t, tr.LoadNamespace(ctx, "fr", "common"), "already stored")
}

func TestPreloadFallbacks(t *testing.T) {
	t.Parallel()

	loader := newMemoryLoader(map[string]map[string]internal.Record{
		"en": {"translations": {"only_en": internal.Text("english")}},
		"fr": {"translations": {}},
	})
	tr, err := internal.Create(context.Background(), internal.Init{
		Logger: logger.NewNope(),
		Locale: "fr",
		Locales: []internal.LocaleInit{
			{Locale: "en"},
			{Locale: "fr", Fallback: internal.FallbackTo("en")},
		},
		LoadNamespace: loader.load,
	})
	require.NoError(t, err)

	assert.Equal(t, "Only en", tr.T("only_en"))
	require.True(t, tr.PreloadFallbacks(context.Background()))
	assert.Equal(t, "english", tr.T("only_en"))
	assert.Equal(t, 1, loader.count("en", "translations"))
}

func TestEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lifecycle events", func(t *testing.T) {
		t.Parallel()
		loader := newMemoryLoader(loaderData)
		tr := internal.New(internal.Init{
			Logger:        logger.NewNope(),
			Locales:       internal.Locales("en", "fr"),
			LoadNamespace: loader.load,
		})

		var (
			mu     sync.Mutex
			events []internal.Event
		)
		record := func(e internal.Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		}
		tr.On(internal.EventNamespacesLoaded, record)
		tr.On(internal.EventLocaleUpdated, record)

		_, err := tr.Init(ctx, record)
		require.NoError(t, err)
		tr.SwitchLocale(ctx, "fr")

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, events, 4)
		assert.Equal(t, internal.EventNamespacesLoaded, events[0].Kind)
		assert.Equal(t, []string{"translations"}, events[0].Namespaces)
		assert.Equal(t, internal.EventInitialized, events[1].Kind)
		assert.Equal(t, "en", events[1].Locale)
		assert.Equal(t, internal.EventNamespacesLoaded, events[2].Kind)
		assert.Equal(t, "fr", events[2].Locale)
		assert.Equal(t, internal.EventLocaleUpdated, events[3].Kind)
	})

	t.Run("coalesced loads emit one event", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		tr, err := internal.CreateSync(internal.Init{
			Logger:  logger.NewNope(),
			Locales: internal.Locales("en"),
			LoadNamespace: func(_ context.Context, _, ns string) (internal.Record, error) {
				<-release
				return loaderData["en"][ns], nil
			},
		})
		require.NoError(t, err)

		var fired atomic.Int32
		tr.On(internal.EventNamespacesLoaded, func(internal.Event) { fired.Add(1) })

		var wg sync.WaitGroup
		for range 5 {
			wg.Go(func() { assert.True(t, tr.LoadNamespace(ctx, "en", "auth")) })
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), fired.Load())
		assert.Equal(t, "Login", tr.T("auth:login"))
	})

	t.Run("unsubscribe and off", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, internal.Init{Locales: internal.Locales("en", "fr", "de")})

		var a, b atomic.Int32
		offA := tr.On(internal.EventLocaleUpdated, func(internal.Event) { a.Add(1) })
		tr.On(internal.EventLocaleUpdated, func(internal.Event) { b.Add(1) })

		tr.SwitchLocaleSync("fr")
		require.True(t, offA())
		require.False(t, offA())
		tr.SwitchLocaleSync("de")
		require.True(t, tr.Off(internal.EventLocaleUpdated))
		require.False(t, tr.Off(internal.EventLocaleUpdated))
		tr.SwitchLocaleSync("en")

		assert.Equal(t, int32(1), a.Load())
		assert.Equal(t, int32(2), b.Load())
	})

	t.Run("listeners may call back into the engine", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, internal.Init{Locales: internal.Locales("en", "fr")})
		tr.On(internal.EventLocaleUpdated, func(e internal.Event) {
			if e.Locale == "fr" {
				tr.SwitchLocaleSync("en")
			}
		})
		tr.SwitchLocaleSync("fr")
		assert.Equal(t, "en", tr.Locale())
	})

	t.Run("instances are independent", func(t *testing.T) {
		t.Parallel()
		one := seeded(t, internal.Init{Locales: internal.Locales("en", "fr")})
		two := seeded(t, internal.Init{Locales: internal.Locales("en", "fr")})
		var fired atomic.Int32
		two.On(internal.EventLocaleUpdated, func(internal.Event) { fired.Add(1) })

		one.SwitchLocaleSync("fr")
		assert.Equal(t, "en", two.Locale())
		assert.Zero(t, fired.Load())
	})
}
