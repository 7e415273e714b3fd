package internal

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLocale is used when the configuration names no locale at all.
	DefaultLocale = "default"
	// DefaultNamespace is used when the configuration names no namespace.
	DefaultNamespace = "translations"
	// DefaultNamespaceSeparator separates the namespace from the key.
	DefaultNamespaceSeparator = ":"
	// DefaultKeysSeparator separates the segments of a key.
	DefaultKeysSeparator = "."
)

// NotFoundPolicy decides what a lookup returns when a key is missing everywhere.
type NotFoundPolicy string

const (
	NotFoundRawKey    NotFoundPolicy = "rawkey"
	NotFoundPrettyKey NotFoundPolicy = "prettykey"
	NotFoundEmpty     NotFoundPolicy = "empty"
	NotFoundUndefined NotFoundPolicy = "undefined"
)

// TooDeepPolicy decides what a lookup returns when a key asks for a child of a
// value that is already a translation.
type TooDeepPolicy string

const (
	TooDeepNotFound  TooDeepPolicy = "notfound"
	TooDeepLastValue TooDeepPolicy = "lastvalue"
)

// NamespaceLoader loads a single namespace for a locale.
// Returning a nil Record with a nil error means the namespace has no data.
type NamespaceLoader func(ctx context.Context, locale, namespace string) (Record, error)

// NamespacesLoader loads several namespaces for a locale in one call.
// Namespaces absent from the result are skipped.
type NamespacesLoader func(ctx context.Context, locale string, namespaces []string) (map[string]Record, error)

// LoadFunc is the canonical loader shape used by the engine.
type LoadFunc func(ctx context.Context, locale string, namespaces []string) (map[string]Record, error)

type fallbackMode uint8

const (
	fallbackDefault fallbackMode = iota
	fallbackDisabled
	fallbackList
)

// FallbackInit is the configured fallback of a locale.
// The zero value applies the default policy: every other locale in table
// order, except for the default locale which never falls back.
type FallbackInit struct {
	locales []string
	mode    fallbackMode
}

// NoFallback disables fallback for a locale.
func NoFallback() FallbackInit {
	return FallbackInit{mode: fallbackDisabled}
}

// FallbackTo sets an explicit ordered fallback list.
// A list that is empty once the locale itself and duplicates are removed disables fallback.
func FallbackTo(locales ...string) FallbackInit {
	return FallbackInit{mode: fallbackList, locales: locales}
}

// LocaleInit is one entry of the locales table.
// If Locale is empty it is derived from Name.
type LocaleInit struct {
	Locale   string
	Name     string
	Fallback FallbackInit
}

// NamespacesInit configures the default and required namespaces.
type NamespacesInit struct {
	Default  string
	Required []string
}

// SyntaxInit overrides the key separators.
type SyntaxInit struct {
	NamespaceSeparator string
	KeysSeparator      string
}

// InvalidKeysInit configures the invalid key policies. Values are case-insensitive.
type InvalidKeysInit struct {
	NotFound string
	TooDeep  string
}

// Init is the raw configuration. Every field is optional.
type Init struct {
	// Translations seeds data as locale -> namespace -> record, ingested before any loader runs.
	Translations   map[string]map[string]Record
	LoadNamespaces NamespacesLoader
	LoadNamespace  NamespaceLoader
	Logger         *slog.Logger
	Locale         string
	InvalidKeys    InvalidKeysInit
	Syntax         SyntaxInit
	Namespaces     NamespacesInit
	Locales        []LocaleInit
}

// Options is the canonical configuration produced by Resolve.
type Options struct {
	Registry           *Registry
	Load               LoadFunc
	Logger             *slog.Logger
	Locale             string
	DefaultNamespace   string
	NamespaceSeparator string
	KeysSeparator      string
	NotFound           NotFoundPolicy
	TooDeep            TooDeepPolicy
	RequiredNamespaces []string
}

// Locales builds a locales table from bare locale ids.
func Locales(locales ...string) []LocaleInit {
	out := make([]LocaleInit, 0, len(locales))
	for _, l := range locales {
		out = append(out, LocaleInit{Locale: l})
	}
	return out
}

// Resolve turns a raw configuration into canonical options.
// Missing or malformed fields fall back to their defaults; the only error is a
// locale entry with neither an id nor a name.
func Resolve(init Init) (*Options, error) {
	log := init.Logger
	if log == nil {
		log = slog.Default()
	}

	locale, defs, err := resolveLocales(init, log)
	if err != nil {
		return nil, err
	}

	defaultNs, required := resolveNamespaces(init.Namespaces)
	nsSep, keySep := resolveSyntax(init.Syntax)
	notFound, tooDeep := resolveInvalidKeys(init.InvalidKeys)

	return &Options{
		Locale:             locale,
		Registry:           newRegistry(defs),
		DefaultNamespace:   defaultNs,
		RequiredNamespaces: required,
		NamespaceSeparator: nsSep,
		KeysSeparator:      keySep,
		NotFound:           notFound,
		TooDeep:            tooDeep,
		Load:               resolveLoader(init, log),
		Logger:             log,
	}, nil
}

func resolveLocales(init Init, log *slog.Logger) (string, []LocaleDefinition, error) {
	active := normalize(init.Locale)

	if len(init.Locales) == 0 {
		if active == "" {
			active = DefaultLocale
		}
		return active, []LocaleDefinition{{Locale: active, Name: active}}, nil
	}

	entries := make(map[string]LocaleInit, len(init.Locales))
	order := make([]string, 0, len(init.Locales)+1)
	if active != "" {
		order = append(order, active)
	}

	for _, entry := range init.Locales {
		id := normalize(entry.Locale)
		if id == "" {
			id = snakeCase(entry.Name)
		}
		if id == "" {
			return "", nil, ErrInvalidLocaleDefinition
		}
		if _, seen := entries[id]; seen {
			continue
		}
		entry.Locale = id
		entries[id] = entry
		if !slices.Contains(order, id) {
			order = append(order, id)
		}
	}

	if active == "" {
		active = order[0]
	}

	defs := make([]LocaleDefinition, 0, len(order))
	for _, id := range order {
		entry, ok := entries[id]
		if !ok {
			// The active locale is not part of the table.
			defs = append(defs, LocaleDefinition{Locale: id, Name: id})
			continue
		}

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = id
		}

		defs = append(defs, LocaleDefinition{
			Locale:   id,
			Name:     name,
			Fallback: resolveFallback(entry, id == active, order, log),
		})
	}

	return active, defs, nil
}

func resolveFallback(entry LocaleInit, isDefault bool, order []string, log *slog.Logger) []string {
	switch entry.Fallback.mode {
	case fallbackDisabled:
		return nil
	case fallbackList:
		fallback := make([]string, 0, len(entry.Fallback.locales))
		for _, l := range entry.Fallback.locales {
			l = normalize(l)
			if l == entry.Locale {
				log.Warn("translations: a locale cannot fall back to itself", slog.String("locale", l))
				continue
			}
			if l == "" || slices.Contains(fallback, l) {
				continue
			}
			fallback = append(fallback, l)
		}
		if len(fallback) == 0 {
			return nil
		}
		return fallback
	default:
		if isDefault {
			return nil
		}
		fallback := make([]string, 0, len(order))
		for _, l := range order {
			if l != entry.Locale {
				fallback = append(fallback, l)
			}
		}
		if len(fallback) == 0 {
			return nil
		}
		return fallback
	}
}

func resolveNamespaces(init NamespacesInit) (string, []string) {
	defaultNs := normalize(init.Default)
	if defaultNs == "" {
		defaultNs = DefaultNamespace
	}

	required := []string{defaultNs}
	for _, ns := range init.Required {
		ns = normalize(ns)
		if ns == "" || slices.Contains(required, ns) {
			continue
		}
		required = append(required, ns)
	}

	return defaultNs, required
}

func resolveSyntax(init SyntaxInit) (string, string) {
	nsSep := init.NamespaceSeparator
	if nsSep == "" {
		nsSep = DefaultNamespaceSeparator
	}
	keySep := init.KeysSeparator
	if keySep == "" {
		keySep = DefaultKeysSeparator
	}
	return nsSep, keySep
}

func resolveInvalidKeys(init InvalidKeysInit) (NotFoundPolicy, TooDeepPolicy) {
	notFound := NotFoundPolicy(normalize(init.NotFound))
	switch notFound {
	case NotFoundRawKey, NotFoundPrettyKey, NotFoundEmpty, NotFoundUndefined:
	default:
		notFound = NotFoundPrettyKey
	}

	tooDeep := TooDeepPolicy(normalize(init.TooDeep))
	switch tooDeep {
	case TooDeepNotFound, TooDeepLastValue:
	default:
		tooDeep = TooDeepLastValue
	}

	return notFound, tooDeep
}

// resolveLoader adapts the configured loader shapes into a single LoadFunc.
// A single-namespace request prefers LoadNamespace; larger requests prefer
// LoadNamespaces. A lone LoadNamespace is fanned out concurrently.
func resolveLoader(init Init, log *slog.Logger) LoadFunc {
	many, one := init.LoadNamespaces, init.LoadNamespace

	if many == nil && one == nil {
		return func(context.Context, string, []string) (map[string]Record, error) {
			return nil, ErrNoLoader
		}
	}

	return func(ctx context.Context, locale string, namespaces []string) (map[string]Record, error) {
		if one != nil && (many == nil || len(namespaces) == 1) {
			return fanOut(ctx, one, locale, namespaces, log)
		}

		result, err := many(ctx, locale, namespaces)
		if err != nil || result == nil {
			return nil, err
		}

		normalized := make(map[string]Record, len(result))
		for ns, rec := range result {
			if rec == nil {
				continue
			}
			ns = normalize(ns)
			if _, exists := normalized[ns]; !exists {
				normalized[ns] = rec
			}
		}
		return normalized, nil
	}
}

func fanOut(ctx context.Context, load NamespaceLoader, locale string, namespaces []string, log *slog.Logger) (map[string]Record, error) {
	var (
		mu     sync.Mutex
		errs   []error
		result = make(map[string]Record, len(namespaces))
		g      errgroup.Group
	)

	for _, ns := range namespaces {
		g.Go(func() error {
			rec, err := load(ctx, locale, ns)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.WarnContext(ctx, "translations: failed to load namespace",
					slog.String("locale", locale),
					slog.String("namespace", ns),
					slog.String("error", err.Error()),
				)
				errs = append(errs, err)
				return nil
			}
			if rec != nil {
				result[ns] = rec
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == len(namespaces) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return result, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// snakeCase derives a locale id from a display name, e.g. "Swiss German" -> "swiss_german".
func snakeCase(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
