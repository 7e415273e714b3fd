// Package internal provides the core types and implementation of the translations engine.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/translations" instead, which re-exports the public API.
//
// # Components
//
//   - Resolve: turns a loose Init into canonical Options (locales, fallback, namespaces, syntax, policies, loader)
//   - Registry: the immutable table of allowed locales and their fallback chains
//   - Store: flattened translations per locale and namespace, first writer wins, plus the required set
//   - Loader: fetches missing namespaces and coalesces identical in-flight requests
//   - Translator: key parsing, fallback walk, too-deep and not-found policies
//   - Events: per-instance listeners for initialized, locale updated and namespaces loaded
//   - Translations: the facade composing all of the above
//
// # Concurrency
//
// A Translations value is safe for concurrent use. The store and the active
// locale are guarded by read/write mutexes; listeners are invoked without any
// engine lock held, so they may call back into the engine.
package internal
