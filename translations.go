package translations

import (
	"context"

	"github.com/dmitrymomot/translations/internal"
)

// Type aliases - public API
type (
	// Translations is the translation engine.
	// Create one with New, Create or CreateSync.
	Translations = internal.Translations

	// Init is the raw configuration. Every field is optional.
	Init = internal.Init

	// Options is the canonical configuration produced by Resolve.
	Options = internal.Options

	// LocaleInit is one entry of the locales table.
	LocaleInit = internal.LocaleInit

	// FallbackInit is the configured fallback of a locale.
	FallbackInit = internal.FallbackInit

	// NamespacesInit configures the default and required namespaces.
	NamespacesInit = internal.NamespacesInit

	// SyntaxInit overrides the key separators.
	SyntaxInit = internal.SyntaxInit

	// InvalidKeysInit configures the not-found and too-deep policies.
	InvalidKeysInit = internal.InvalidKeysInit

	// LocaleDefinition describes a registered locale.
	LocaleDefinition = internal.LocaleDefinition

	// Registry is the immutable table of allowed locales.
	Registry = internal.Registry

	// Record is a nested translations tree for a single namespace.
	Record = internal.Record

	// Node is a Record or a leaf Translation.
	Node = internal.Node

	// Translation is a leaf node that renders to a string.
	Translation = internal.Translation

	// Text is a literal string translation.
	Text = internal.Text

	// Number is a literal numeric translation.
	Number = internal.Number

	// Func is a translation computed from arguments.
	Func = internal.Func

	// Args holds the values passed to function translations.
	Args = internal.Args

	// NamespaceLoader loads a single namespace for a locale.
	NamespaceLoader = internal.NamespaceLoader

	// NamespacesLoader loads several namespaces for a locale in one call.
	NamespacesLoader = internal.NamespacesLoader

	// TOption configures a single lookup.
	TOption = internal.TOption

	// SwitchResult reports the outcome of a locale switch.
	SwitchResult = internal.SwitchResult

	// NotFoundPolicy decides what a lookup returns for a missing key.
	NotFoundPolicy = internal.NotFoundPolicy

	// TooDeepPolicy decides what a lookup returns when a key goes below a leaf.
	TooDeepPolicy = internal.TooDeepPolicy

	// EventKind identifies a lifecycle event.
	EventKind = internal.EventKind

	// Event is the payload delivered to listeners.
	Event = internal.Event

	// Listener receives events.
	Listener = internal.Listener
)

// Defaults
const (
	DefaultLocale             = internal.DefaultLocale
	DefaultNamespace          = internal.DefaultNamespace
	DefaultNamespaceSeparator = internal.DefaultNamespaceSeparator
	DefaultKeysSeparator      = internal.DefaultKeysSeparator
)

// Policies
const (
	NotFoundRawKey    = internal.NotFoundRawKey
	NotFoundPrettyKey = internal.NotFoundPrettyKey
	NotFoundEmpty     = internal.NotFoundEmpty
	NotFoundUndefined = internal.NotFoundUndefined

	TooDeepNotFound  = internal.TooDeepNotFound
	TooDeepLastValue = internal.TooDeepLastValue
)

// Switch results
const (
	LocaleRejected  = internal.LocaleRejected
	LocaleUnchanged = internal.LocaleUnchanged
	LocaleSwitched  = internal.LocaleSwitched
)

// Events
const (
	EventInitialized      = internal.EventInitialized
	EventLocaleUpdated    = internal.EventLocaleUpdated
	EventNamespacesLoaded = internal.EventNamespacesLoaded
)

// Errors
var (
	ErrInvalidLocaleDefinition = internal.ErrInvalidLocaleDefinition
	ErrNoLoader                = internal.ErrNoLoader
	ErrUnknownLocale           = internal.ErrUnknownLocale
	ErrInvalidConfig           = internal.ErrInvalidConfig
)

// Constructors

// New creates an uninitialized engine. Call Init or InitSync before use.
//
// Example:
//
//	tr := translations.New(translations.Init{
//	    Locales: translations.Locales("en", "fr"),
//	    LoadNamespace: loaders.FS(os.DirFS("locales")),
//	})
//	tr.On(translations.EventLocaleUpdated, func(e translations.Event) { ... })
//	if _, err := tr.Init(ctx); err != nil {
//	    return err
//	}
func New(init Init) *Translations {
	return internal.New(init)
}

// Create builds an engine, loads the required namespaces of the initial
// locale and emits the initialized event.
func Create(ctx context.Context, init Init) (*Translations, error) {
	return internal.Create(ctx, init)
}

// CreateSync builds an engine from seeded translations only.
// No loader is called.
func CreateSync(init Init) (*Translations, error) {
	return internal.CreateSync(init)
}

// Resolve turns a raw configuration into canonical options.
func Resolve(init Init) (*Options, error) {
	return internal.Resolve(init)
}

// ParseConfig decodes a YAML or JSON configuration document.
// Loaders and the logger must be set on the returned Init by the caller.
func ParseConfig(data []byte) (Init, error) {
	return internal.ParseConfig(data)
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (Init, error) {
	return internal.LoadConfig(path)
}

// RecordFrom converts decoded JSON or YAML data into a Record.
func RecordFrom(data map[string]any) Record {
	return internal.RecordFrom(data)
}

// Unflatten builds a nested record from keys joined with sep.
func Unflatten(flat map[string]string, sep string) Record {
	return internal.Unflatten(flat, sep)
}

// Configuration helpers

// Locales builds a locales table from bare locale ids.
func Locales(locales ...string) []LocaleInit {
	return internal.Locales(locales...)
}

// NoFallback disables fallback for a locale.
func NoFallback() FallbackInit {
	return internal.NoFallback()
}

// FallbackTo sets an explicit ordered fallback list for a locale.
func FallbackTo(locales ...string) FallbackInit {
	return internal.FallbackTo(locales...)
}

// Lookup options

// InNamespace looks the key up in ns unless the key names a namespace itself.
func InNamespace(ns string) TOption {
	return internal.InNamespace(ns)
}

// WithArgs passes arguments to function translations.
func WithArgs(args Args) TOption {
	return internal.WithArgs(args)
}
