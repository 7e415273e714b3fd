package internal

import "slices"

// LocaleDefinition describes a registered locale.
// A nil Fallback means the locale never falls back.
type LocaleDefinition struct {
	Locale   string   `json:"locale" yaml:"locale"`
	Name     string   `json:"name" yaml:"name"`
	Fallback []string `json:"fallback" yaml:"fallback"`
}

// Registry is the immutable table of allowed locales.
type Registry struct {
	definitions map[string]LocaleDefinition
	order       []string
}

func newRegistry(defs []LocaleDefinition) *Registry {
	r := &Registry{
		definitions: make(map[string]LocaleDefinition, len(defs)),
		order:       make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		if _, exists := r.definitions[def.Locale]; exists {
			continue
		}
		r.definitions[def.Locale] = def
		r.order = append(r.order, def.Locale)
	}
	return r
}

// Has reports whether the locale is registered.
func (r *Registry) Has(locale string) bool {
	_, ok := r.definitions[locale]
	return ok
}

// Definition returns a copy of the locale's definition.
func (r *Registry) Definition(locale string) (LocaleDefinition, bool) {
	def, ok := r.definitions[locale]
	if !ok {
		return LocaleDefinition{}, false
	}
	def.Fallback = slices.Clone(def.Fallback)
	return def, true
}

// Locales returns the registered locales in table order.
func (r *Registry) Locales() []string {
	return slices.Clone(r.order)
}

// FallbackChain returns the lookup order for a locale: the locale itself followed
// by its fallback list. No locale appears twice.
func (r *Registry) FallbackChain(locale string) []string {
	def := r.definitions[locale]
	chain := make([]string, 0, len(def.Fallback)+1)
	chain = append(chain, locale)
	return append(chain, def.Fallback...)
}
