// Package translations resolves symbolic, optionally namespaced keys into
// localized strings.
//
// An engine knows a table of locales, each with an ordered fallback chain, and
// a set of namespaces whose content is seeded up front or loaded lazily through
// caller-supplied loaders. Lookups never block on I/O: they read whatever is
// stored and fall back along the chain of the active locale.
//
// # Quick Start
//
//	tr, err := translations.CreateSync(translations.Init{
//	    Locales: translations.Locales("en", "fr"),
//	    Translations: map[string]map[string]translations.Record{
//	        "en": {"common": {"hello": translations.Text("Hello")}},
//	        "fr": {"common": {"hello": translations.Text("Bonjour")}},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	tr.T("common:hello")        // "Hello"
//	tr.SwitchLocaleSync("fr")
//	tr.T("common:hello")        // "Bonjour"
//
// # Keys
//
// A key is "namespace:path.to.leaf". The namespace part is recognized only when
// it names a known namespace; otherwise the whole input is looked up in the
// default namespace. Leaves are Text, Number or Func values. Func translations
// receive the Args passed with WithArgs:
//
//	translations.Record{
//	    "greeting": translations.Func(func(a translations.Args) string {
//	        return fmt.Sprintf("Hello, %v", a["name"])
//	    }),
//	}
//
//	tr.T("greeting", translations.WithArgs(translations.Args{"name": "Ada"}))
//
// # Missing Keys
//
// When a key is missing in every locale of the chain, the not-found policy
// decides the result: the raw key, a prettified last segment (the default),
// an empty string, or no value at all (Lookup reports false).
//
// When a key asks for a child of a leaf ("user.name.first" where "user.name"
// is a string), the "lastvalue" policy returns the deepest existing value and
// "notfound" treats the key as missing.
//
// # Loading
//
// Loaders live in pkg/loaders (filesystem, HTTP, S3, cached, chained) and
// pkg/pgstore (Postgres). Create and SwitchLocale load the required namespaces
// of a locale before it is used. Loader failures are logged and never surface
// to lookups.
//
// # Events
//
// On registers listeners for EventInitialized, EventLocaleUpdated and
// EventNamespacesLoaded. Listeners run synchronously after the change is
// visible.
package translations
