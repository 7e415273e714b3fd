// Package loaders provides namespace loaders for the translations engine.
//
// Every loader returns (nil, nil) for a namespace that does not exist, so
// the engine treats it as "no data" rather than a failure.
//
// # File System
//
// FS reads {locale}/{namespace}.json, .yaml or .yml from any fs.FS:
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	sub, _ := fs.Sub(localesFS, "locales")
//	tr, err := translations.Create(ctx, translations.Init{
//	    Locales:       translations.Locales("en", "fr"),
//	    LoadNamespace: loaders.FS(sub),
//	})
//
// # Remote Sources
//
// HTTP fetches GET {baseURL}/{locale}/{namespace}.json; a 404 is no data.
// S3 reads the same layout from an S3-compatible bucket under an optional
// key prefix. Both map transport failures onto ErrRequestFailed and
// ErrAccessDenied.
//
// # Composition
//
// Chain asks loaders in order and returns the first record found. Cached
// puts a pkg/cache backend in front of any loader:
//
//	load := loaders.Cached(
//	    loaders.Chain(loaders.FS(sub), loaders.HTTP(cdnURL)),
//	    cache.NewMemory(),
//	    10*time.Minute,
//	)
package loaders
