package internal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/translations/internal"
	"github.com/dmitrymomot/translations/pkg/logger"
)

const yamlConfig = `
locale: fr
locales:
  en: English
  fr: { name: Français, fallback: [en] }
  de: { fallback: false }
namespaces: { default: common, required: auth }
syntax: { keysSeparator: "/" }
invalidKeys: { notFound: rawkey }
translations:
  en:
    common:
      hello: Hello
      nested: { count: 3 }
  fr:
    common:
`

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("mapping form keeps table order", func(t *testing.T) {
		t.Parallel()
		init, err := internal.ParseConfig([]byte(yamlConfig))
		require.NoError(t, err)

		opts, err := internal.Resolve(init)
		require.NoError(t, err)
		assert.Equal(t, "fr", opts.Locale)
		assert.Equal(t, []string{"fr", "en", "de"}, opts.Registry.Locales())
		assert.Equal(t, []string{"fr", "en"}, opts.Registry.FallbackChain("fr"))
		assert.Equal(t, []string{"en", "fr", "de"}, opts.Registry.FallbackChain("en"))
		assert.Equal(t, []string{"de"}, opts.Registry.FallbackChain("de"))
		assert.Equal(t, "common", opts.DefaultNamespace)
		assert.Equal(t, []string{"common", "auth"}, opts.RequiredNamespaces)
		assert.Equal(t, "/", opts.KeysSeparator)
		assert.Equal(t, internal.NotFoundRawKey, opts.NotFound)

		def, _ := opts.Registry.Definition("en")
		assert.Equal(t, "English", def.Name)
	})

	t.Run("seeded translations are usable", func(t *testing.T) {
		t.Parallel()
		init, err := internal.ParseConfig([]byte(yamlConfig))
		require.NoError(t, err)
		init.Logger = logger.NewNope()

		tr, err := internal.CreateSync(init)
		require.NoError(t, err)
		assert.Equal(t, "Hello", tr.T("hello"))
		assert.Equal(t, "3", tr.T("common:nested/count"))

		_, ok := tr.Snapshot("fr", "common")
		assert.True(t, ok, "a null namespace is stored as empty")
	})

	t.Run("scalar locales", func(t *testing.T) {
		t.Parallel()
		init, err := internal.ParseConfig([]byte("locales: en\nnamespaces: ui"))
		require.NoError(t, err)
		require.Equal(t, internal.Locales("en"), init.Locales)
		require.Equal(t, "ui", init.Namespaces.Default)
	})

	t.Run("sequence locales with partial definitions", func(t *testing.T) {
		t.Parallel()
		init, err := internal.ParseConfig([]byte(`{"locales": ["en", {"name": "Swiss German", "fallback": "en"}]}`))
		require.NoError(t, err)

		opts, err := internal.Resolve(init)
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "swiss_german"}, opts.Registry.Locales())
		assert.Equal(t, []string{"swiss_german", "en"}, opts.Registry.FallbackChain("swiss_german"))
	})

	t.Run("fallback true keeps the default policy", func(t *testing.T) {
		t.Parallel()
		init, err := internal.ParseConfig([]byte("locales: [en, {locale: fr, fallback: true}, de]"))
		require.NoError(t, err)
		opts, err := internal.Resolve(init)
		require.NoError(t, err)
		assert.Equal(t, []string{"fr", "en", "de"}, opts.Registry.FallbackChain("fr"))
	})

	t.Run("invalid documents", func(t *testing.T) {
		t.Parallel()
		for _, doc := range []string{
			"locale: [unclosed",
			"locales: [[en]]",
			"locales: [{locale: fr, fallback: {a: b}}]",
			"namespaces: [a, b]",
		} {
			_, err := internal.ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, internal.ErrInvalidConfig, doc)
		}
	})

	t.Run("load from file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "translations.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o600))

		init, err := internal.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "fr", init.Locale)

		_, err = internal.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, internal.ErrInvalidConfig)
	})
}
