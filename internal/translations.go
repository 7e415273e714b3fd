package internal

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// SwitchResult reports the outcome of a locale switch.
type SwitchResult int8

const (
	// LocaleRejected means the locale is not registered; nothing changed.
	LocaleRejected SwitchResult = iota - 1
	// LocaleUnchanged means the locale was already active; nothing to do.
	LocaleUnchanged
	// LocaleSwitched means the active locale changed.
	LocaleSwitched
)

func (r SwitchResult) String() string {
	switch r {
	case LocaleRejected:
		return "rejected"
	case LocaleUnchanged:
		return "unchanged"
	case LocaleSwitched:
		return "switched"
	default:
		return "unknown"
	}
}

// Translations is the user-facing translation engine. It owns the resolved
// configuration, the locale registry, the namespace store, the translator and
// the event registry. Instances share no state with each other.
type Translations struct {
	init       Init
	opts       *Options
	store      *Store
	loader     *Loader
	translator *Translator
	events     *Events
	logger     *slog.Logger
	locale     string

	mu          sync.RWMutex
	initMu      sync.Mutex
	initialized atomic.Bool
}

// New creates an uninitialized instance. Call Init or InitSync before use.
// Listeners may be registered before initialization.
func New(init Init) *Translations {
	logger := init.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Translations{
		init:   init,
		events: NewEvents(),
		logger: logger,
	}
}

// Create builds and initializes an instance, loading the required namespaces
// of the initial locale.
func Create(ctx context.Context, init Init) (*Translations, error) {
	return New(init).Init(ctx)
}

// CreateSync builds and initializes an instance without calling any loader.
func CreateSync(init Init) (*Translations, error) {
	return New(init).InitSync()
}

// Init resolves the configuration, ingests seeded translations, loads the
// required namespaces for the initial locale and emits EventInitialized.
// Listeners passed here are registered for EventInitialized. Calling Init on an
// initialized instance is a no-op. Concurrent calls wait until the first one
// has finished loading; only the first one emits EventInitialized.
func (t *Translations) Init(ctx context.Context, listeners ...Listener) (*Translations, error) {
	t.initMu.Lock()
	fresh, err := t.setup(listeners)
	if err != nil || !fresh {
		t.initMu.Unlock()
		return t, err
	}
	t.LoadRequiredNamespaces(ctx, t.Locale())
	t.initMu.Unlock()

	t.events.Emit(Event{Kind: EventInitialized, Locale: t.Locale()})

	return t, nil
}

// InitSync is Init without loading: only seeded translations are available.
func (t *Translations) InitSync(listeners ...Listener) (*Translations, error) {
	t.initMu.Lock()
	fresh, err := t.setup(listeners)
	t.initMu.Unlock()
	if err != nil || !fresh {
		return t, err
	}

	t.events.Emit(Event{Kind: EventInitialized, Locale: t.Locale()})

	return t, nil
}

// setup must be called with initMu held.
func (t *Translations) setup(listeners []Listener) (bool, error) {
	if t.initialized.Load() {
		return false, nil
	}

	opts, err := Resolve(t.init)
	if err != nil {
		return false, err
	}

	t.opts = opts
	t.logger = opts.Logger
	t.store = NewStore(opts.KeysSeparator, opts.RequiredNamespaces)
	t.loader = NewLoader(t.store, opts.Load, opts.Logger, t.namespacesLoaded)
	t.translator = NewTranslator(opts, t.store, t.Locale)

	t.mu.Lock()
	t.locale = opts.Locale
	t.mu.Unlock()

	for _, locale := range slices.Sorted(maps.Keys(t.init.Translations)) {
		seeded := t.init.Translations[locale]
		if locale = normalize(locale); !opts.Registry.Has(locale) {
			t.logger.Error("translations: tried to register translations for an unregistered locale", slog.String("locale", locale))
			continue
		}
		t.addNamespaces(locale, seeded)
	}
	t.init = Init{}

	for _, fn := range listeners {
		t.events.On(EventInitialized, fn)
	}

	t.initialized.Store(true)
	return true, nil
}

// IsInitialized reports whether Init or InitSync completed.
func (t *Translations) IsInitialized() bool {
	return t.initialized.Load()
}

// T translates key. Before initialization the key is returned unchanged.
// With the "undefined" not-found policy a missing key yields "".
func (t *Translations) T(key string, opts ...TOption) string {
	s, _ := t.Lookup(key, opts...)
	return s
}

// Lookup is T that also reports whether a value was produced. It returns false
// only for a missing key under the "undefined" not-found policy.
func (t *Translations) Lookup(key string, opts ...TOption) (string, bool) {
	if !t.initialized.Load() {
		return key, true
	}

	var o TOptions
	for _, opt := range opts {
		opt(&o)
	}
	return t.translator.Translate(key, o)
}

// Locale returns the active locale.
func (t *Translations) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// Locales returns the registered locales in table order.
func (t *Translations) Locales() []string {
	if !t.initialized.Load() {
		return nil
	}
	return t.opts.Registry.Locales()
}

// LocaleDefinition returns the definition of a registered locale.
func (t *Translations) LocaleDefinition(locale string) (LocaleDefinition, bool) {
	if !t.initialized.Load() {
		return LocaleDefinition{}, false
	}
	return t.opts.Registry.Definition(normalize(locale))
}

// FallbackChain returns the lookup order used when locale is active.
func (t *Translations) FallbackChain(locale string) []string {
	if !t.initialized.Load() {
		return nil
	}
	locale = normalize(locale)
	if !t.opts.Registry.Has(locale) {
		return nil
	}
	return t.opts.Registry.FallbackChain(locale)
}

// DefaultNamespace returns the namespace used by keys that name none.
func (t *Translations) DefaultNamespace() string {
	if !t.initialized.Load() {
		return ""
	}
	return t.opts.DefaultNamespace
}

// SwitchLocale loads the required namespaces of the new locale, then makes it
// active and emits EventLocaleUpdated.
func (t *Translations) SwitchLocale(ctx context.Context, locale string) SwitchResult {
	locale = normalize(locale)
	if res := t.checkSwitch(locale); res != LocaleSwitched {
		return res
	}

	t.LoadRequiredNamespaces(ctx, locale)

	return t.applySwitch(locale)
}

// SwitchLocaleSync changes the active locale without loading anything.
func (t *Translations) SwitchLocaleSync(locale string) SwitchResult {
	locale = normalize(locale)
	if res := t.checkSwitch(locale); res != LocaleSwitched {
		return res
	}
	return t.applySwitch(locale)
}

func (t *Translations) checkSwitch(locale string) SwitchResult {
	if !t.initialized.Load() {
		t.logger.Error("translations: cannot switch locale before initialization", slog.String("locale", locale))
		return LocaleRejected
	}
	if locale == t.Locale() {
		return LocaleUnchanged
	}
	if !t.opts.Registry.Has(locale) {
		t.logger.Error("translations: tried to switch to an unregistered locale", slog.String("locale", locale))
		return LocaleRejected
	}
	return LocaleSwitched
}

func (t *Translations) applySwitch(locale string) SwitchResult {
	t.mu.Lock()
	previous := t.locale
	if previous == locale {
		t.mu.Unlock()
		return LocaleUnchanged
	}
	t.locale = locale
	t.mu.Unlock()

	t.events.Emit(Event{Kind: EventLocaleUpdated, Locale: locale, PreviousLocale: previous})

	return LocaleSwitched
}

// RegisterTranslations stores rec under (locale, namespace). Keys already
// present are kept. It returns false if the locale is not registered.
func (t *Translations) RegisterTranslations(locale, namespace string, rec Record) bool {
	return t.RegisterNamespaces(locale, map[string]Record{namespace: rec})
}

// RegisterNamespaces stores several namespaces for a locale at once.
func (t *Translations) RegisterNamespaces(locale string, namespaces map[string]Record) bool {
	locale = normalize(locale)
	if !t.allowed(locale, "translations: tried to register translations for an unregistered locale") {
		return false
	}
	t.addNamespaces(locale, namespaces)
	return true
}

func (t *Translations) addNamespaces(locale string, namespaces map[string]Record) {
	for _, ns := range slices.Sorted(maps.Keys(namespaces)) {
		t.store.Add(locale, ns, namespaces[ns])
	}
}

func (t *Translations) allowed(locale, msg string) bool {
	if !t.initialized.Load() {
		t.logger.Error("translations: used before initialization", slog.String("locale", locale))
		return false
	}
	if !t.opts.Registry.Has(locale) {
		t.logger.Error(msg, slog.String("locale", locale))
		return false
	}
	return true
}

// RequireNamespace adds a namespace to the required set and loads it for the
// active locale.
func (t *Translations) RequireNamespace(ctx context.Context, namespace string) bool {
	return t.RequireNamespaces(ctx, namespace)
}

// RequireNamespaces adds namespaces to the required set and loads them for the
// active locale.
func (t *Translations) RequireNamespaces(ctx context.Context, namespaces ...string) bool {
	if !t.initialized.Load() {
		return false
	}
	t.store.Require(namespaces...)
	return t.LoadRequiredNamespaces(ctx, t.Locale())
}

// DropNamespace removes a namespace from the required set. Loaded data stays.
func (t *Translations) DropNamespace(namespace string) {
	t.DropNamespaces(namespace)
}

// DropNamespaces removes namespaces from the required set. Loaded data stays.
func (t *Translations) DropNamespaces(namespaces ...string) {
	if !t.initialized.Load() {
		return
	}
	t.store.Drop(namespaces...)
}

// RequiredNamespaces returns the required set in insertion order.
func (t *Translations) RequiredNamespaces() []string {
	if !t.initialized.Load() {
		return nil
	}
	return t.store.RequiredNamespaces()
}

// Namespaces lists every known namespace: the default one, the required ones
// and any namespace holding data for at least one locale.
func (t *Translations) Namespaces() []string {
	if !t.initialized.Load() {
		return nil
	}
	known := append(t.store.RequiredNamespaces(), t.store.Namespaces()...)
	known = append(known, t.opts.DefaultNamespace)
	slices.Sort(known)
	return slices.Compact(known)
}

// LoadRequiredNamespaces loads the required namespaces missing for locale.
func (t *Translations) LoadRequiredNamespaces(ctx context.Context, locale string) bool {
	if !t.initialized.Load() {
		return false
	}
	return t.LoadNamespaces(ctx, locale, t.store.RequiredNamespaces())
}

// LoadNamespaces loads the given namespaces for locale, skipping those already
// stored. It reports false when the locale is unknown or the loader is missing
// or failed.
func (t *Translations) LoadNamespaces(ctx context.Context, locale string, namespaces []string) bool {
	locale = normalize(locale)
	if !t.allowed(locale, "translations: tried to load namespaces for an unregistered locale") {
		return false
	}

	_, ok := t.loader.Load(ctx, locale, namespaces)
	return ok
}

func (t *Translations) namespacesLoaded(_ context.Context, locale string, namespaces []string) {
	t.events.Emit(Event{Kind: EventNamespacesLoaded, Locale: locale, Namespaces: namespaces})
}

// LoadNamespace loads a single namespace for locale.
func (t *Translations) LoadNamespace(ctx context.Context, locale, namespace string) bool {
	return t.LoadNamespaces(ctx, locale, []string{namespace})
}

// PreloadFallbacks loads the required namespaces for every fallback locale of
// the active locale, so fallback lookups can find loaded data.
func (t *Translations) PreloadFallbacks(ctx context.Context) bool {
	if !t.initialized.Load() {
		return false
	}

	ok := true
	for _, locale := range t.opts.Registry.FallbackChain(t.Locale())[1:] {
		if !t.opts.Registry.Has(locale) {
			continue
		}
		if !t.LoadRequiredNamespaces(ctx, locale) {
			ok = false
		}
	}
	return ok
}

// Raw returns the stored translation for an exact key, without fallback or rendering.
func (t *Translations) Raw(locale, namespace, key string) (Translation, bool) {
	if !t.initialized.Load() {
		return nil, false
	}
	return t.store.Translation(locale, namespace, key)
}

// Snapshot returns a copy of the flattened translations stored for (locale, namespace).
func (t *Translations) Snapshot(locale, namespace string) (map[string]Translation, bool) {
	if !t.initialized.Load() {
		return nil, false
	}
	return t.store.Namespace(locale, namespace)
}

// On registers a listener and returns a function removing it.
func (t *Translations) On(kind EventKind, fn Listener) func() bool {
	return t.events.On(kind, fn)
}

// Off removes every listener registered for kind.
func (t *Translations) Off(kind EventKind) bool {
	return t.events.Off(kind)
}
