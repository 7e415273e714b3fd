package internal

import "strings"

// TOptions are the per-call lookup options.
type TOptions struct {
	Args      Args
	Namespace string
}

// TOption configures a single lookup.
type TOption func(*TOptions)

// InNamespace looks the key up in ns unless the key names a namespace itself.
func InNamespace(ns string) TOption {
	return func(o *TOptions) {
		o.Namespace = ns
	}
}

// WithArgs passes arguments to function translations.
func WithArgs(args Args) TOption {
	return func(o *TOptions) {
		o.Args = args
	}
}

// Translator resolves keys against the store using the fallback chain of the
// active locale.
type Translator struct {
	opts   *Options
	store  *Store
	locale func() string
}

// NewTranslator creates a translator reading the active locale through locale.
func NewTranslator(opts *Options, store *Store, locale func() string) *Translator {
	return &Translator{opts: opts, store: store, locale: locale}
}

// Translate resolves key and renders it. The boolean is false only when the
// key is missing and the not-found policy is "undefined".
func (t *Translator) Translate(key string, o TOptions) (string, bool) {
	tr, raw, found := t.Find(key, o.Namespace)
	if !found {
		return t.notFound(raw)
	}
	return tr.Render(o.Args), true
}

// Find returns the unrendered translation for key, with the fallback walk and
// the too-deep policy applied. The namespace-less key is returned for use by
// the not-found policy.
func (t *Translator) Find(key, namespace string) (Translation, string, bool) {
	if key == "" {
		return nil, "", false
	}

	ns, raw := t.parse(key, namespace)
	if raw == "" {
		return nil, raw, false
	}

	sep := t.opts.KeysSeparator
	segments := strings.Split(raw, sep)
	chain := t.opts.Registry.FallbackChain(t.locale())

	for depth := len(segments); depth > 0; depth-- {
		joined := strings.Join(segments[:depth], sep)
		for _, locale := range chain {
			if tr, ok := t.store.Translation(locale, ns, joined); ok {
				return tr, raw, true
			}
		}
		if t.opts.TooDeep == TooDeepNotFound {
			break
		}
	}

	return nil, raw, false
}

// parse splits key into namespace and raw key. The text before the first
// namespace separator counts as a namespace only if that namespace is known;
// otherwise the whole input is the key.
func (t *Translator) parse(key, namespace string) (string, string) {
	fallback := normalize(namespace)
	if fallback == "" {
		fallback = t.opts.DefaultNamespace
	}

	before, after, found := strings.Cut(key, t.opts.NamespaceSeparator)
	if !found {
		return fallback, key
	}
	if after == "" {
		return fallback, before
	}

	if candidate := normalize(before); t.known(candidate) {
		return candidate, after
	}
	return fallback, key
}

func (t *Translator) known(ns string) bool {
	if ns == "" {
		return false
	}
	return ns == t.opts.DefaultNamespace || t.store.Known(ns)
}

func (t *Translator) notFound(raw string) (string, bool) {
	switch t.opts.NotFound {
	case NotFoundRawKey:
		return raw, true
	case NotFoundEmpty:
		return "", true
	case NotFoundUndefined:
		return "", false
	default:
		last := raw
		if i := strings.LastIndex(raw, t.opts.KeysSeparator); i >= 0 {
			last = raw[i+len(t.opts.KeysSeparator):]
		}
		return prettyKey(last), true
	}
}
