package internal_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/translations/internal"
	"github.com/dmitrymomot/translations/pkg/logger"
)

func seeded(t *testing.T, init internal.Init) *internal.Translations {
	t.Helper()
	if init.Logger == nil {
		init.Logger = logger.NewNope()
	}
	tr, err := internal.CreateSync(init)
	require.NoError(t, err)
	return tr
}

func TestTranslateKeys(t *testing.T) {
	t.Parallel()

	tr := seeded(t, internal.Init{
		Locales: internal.Locales("en"),
		Translations: map[string]map[string]internal.Record{
			"en": {
				"translations": {
					"hello": internal.Text("Hello"),
					"count": internal.Number(3.5),
					"greet": internal.Func(func(a internal.Args) string {
						return fmt.Sprintf("Hi, %v", a["name"])
					}),
					"args": internal.Func(func(a internal.Args) string {
						return fmt.Sprintf("%d", len(a))
					}),
					"nested": internal.Record{
						"key": internal.Record{"path": internal.Text("Real value")},
					},
				},
				"auth": {
					"login": internal.Text("Login"),
				},
			},
		},
	})

	t.Run("default namespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hello", tr.T("hello"))
		assert.Equal(t, tr.T("hello"), tr.T("translations:hello"))
		assert.Equal(t, "Real value", tr.T("nested.key.path"))
	})

	t.Run("numbers are stringified", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "3.5", tr.T("count"))
	})

	t.Run("functions receive args", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hi, Ada", tr.T("greet", internal.WithArgs(internal.Args{"name": "Ada"})))
		assert.Equal(t, "0", tr.T("args"), "nil args become an empty map")
	})

	t.Run("explicit namespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Login", tr.T("auth:login"))
		assert.Equal(t, "Login", tr.T("login", internal.InNamespace("auth")))
		assert.Equal(t, "Hello", tr.T("translations:hello", internal.InNamespace("auth")),
			"namespace in the key wins over the option")
	})

	t.Run("unknown namespace prefix is part of the key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Ghost login", tr.T("ghost:login"))
	})

	t.Run("too deep keys return the last value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Real value", tr.T("nested.key.path.too.deep"))
		assert.Equal(t, "Hello", tr.T("hello.world"))
	})

	t.Run("not found keys are prettified", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Unfound", tr.T("unfound"))
		assert.Equal(t, "Some missing key", tr.T("deep.someMissingKey"))
		assert.Equal(t, "Snake case key", tr.T("snake_case_key"))
		assert.Equal(t, "Parse html body", tr.T("parseHTMLBody"))
		assert.Equal(t, "", tr.T(""))
	})
}

func TestNotFoundPolicies(t *testing.T) {
	t.Parallel()

	data := map[string]map[string]internal.Record{
		"en": {"translations": {"hello": internal.Text("Hello")}, "auth": {"login": internal.Text("Login")}},
	}

	cases := []struct {
		policy string
		key    string
		want   string
		found  bool
	}{
		{policy: "prettykey", key: "unfound", want: "Unfound", found: true},
		{policy: "prettykey", key: "auth:some.nested_key", want: "Nested key", found: true},
		{policy: "rawkey", key: "unfound", want: "unfound", found: true},
		{policy: "rawkey", key: "auth:missing.key", want: "missing.key", found: true},
		{policy: "rawkey", key: "ghost:missing", want: "ghost:missing", found: true},
		{policy: "rawkey", key: "", want: "", found: true},
		{policy: "empty", key: "unfound", want: "", found: true},
		{policy: "undefined", key: "unfound", want: "", found: false},
	}

	for _, tc := range cases {
		t.Run(tc.policy+"/"+tc.key, func(t *testing.T) {
			t.Parallel()
			tr := seeded(t, internal.Init{
				Translations: data,
				Locale:       "en",
				InvalidKeys:  internal.InvalidKeysInit{NotFound: tc.policy},
			})
			got, found := tr.Lookup(tc.key)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.found, found)
		})
	}
}

func TestTooDeepNotFound(t *testing.T) {
	t.Parallel()

	tr := seeded(t, internal.Init{
		Locales: internal.Locales("en"),
		InvalidKeys: internal.InvalidKeysInit{
			NotFound: "rawkey",
			TooDeep:  "notfound",
		},
		Translations: map[string]map[string]internal.Record{
			"en": {"translations": {
				"nested": internal.Record{"key": internal.Record{"path": internal.Text("Real value")}},
			}},
		},
	})

	assert.Equal(t, "Real value", tr.T("nested.key.path"))
	assert.Equal(t, "nested.key.path.too.deep", tr.T("nested.key.path.too.deep"))
}

func TestFallbackWalk(t *testing.T) {
	t.Parallel()

	init := internal.Init{
		Locales: []internal.LocaleInit{
			{Locale: "en"},
			{Locale: "fr", Fallback: internal.FallbackTo("de", "en")},
			{Locale: "de"},
		},
		Locale: "fr",
		Translations: map[string]map[string]internal.Record{
			"en": {"translations": {
				"only_en": internal.Text("english"),
				"shared":  internal.Text("shared en"),
				"leaf":    internal.Text("leaf en"),
			}},
			"de": {"translations": {
				"shared": internal.Text("shared de"),
				"leaf":   internal.Record{"child": internal.Text("child de")},
			}},
			"fr": {"translations": {}},
		},
	}

	t.Run("key present only in a later fallback", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, init)
		assert.Equal(t, "english", tr.T("only_en"))
	})

	t.Run("earlier fallback wins", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, init)
		assert.Equal(t, "shared de", tr.T("shared"))
	})

	t.Run("exact depth is tried in every locale before shorter prefixes", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, init)
		assert.Equal(t, "child de", tr.T("leaf.child"))
		assert.Equal(t, "leaf en", tr.T("leaf.other"))
	})

	t.Run("switching changes the primary chain only", func(t *testing.T) {
		t.Parallel()
		tr := seeded(t, init)
		require.Equal(t, internal.LocaleSwitched, tr.SwitchLocaleSync("en"))
		assert.Equal(t, []string{"en", "fr", "de"}, tr.FallbackChain("en"))
		assert.Equal(t, "shared en", tr.T("shared"))
		assert.Equal(t, "child de", tr.T("leaf.child"))
	})
}
