package internal

import (
	"maps"
	"slices"
	"sync"
)

// Store holds flattened translations per locale and namespace, plus the set of
// namespaces that must be loaded for the active locale.
//
// Writes are first-writer-wins per (locale, namespace, key): data registered
// directly takes precedence over data loaded later.
type Store struct {
	data     map[string]map[string]map[string]Translation
	keySep   string
	required []string
	mu       sync.RWMutex
}

// NewStore creates an empty store flattening keys with keySep.
func NewStore(keySep string, required []string) *Store {
	return &Store{
		data:     make(map[string]map[string]map[string]Translation),
		keySep:   keySep,
		required: slices.Clone(required),
	}
}

// HasNamespace reports whether the namespace was stored for the locale.
func (s *Store) HasNamespace(locale, namespace string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[normalize(locale)][normalize(namespace)]
	return ok
}

// Translation returns the stored translation for the exact key.
func (s *Store) Translation(locale, namespace, key string) (Translation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.data[normalize(locale)][normalize(namespace)][key]
	return t, ok
}

// Add flattens rec into the store. A nil record is ignored; an empty one marks
// the namespace as present.
func (s *Store) Add(locale, namespace string, rec Record) {
	if rec == nil {
		return
	}

	locale, namespace = normalize(locale), normalize(namespace)

	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, ok := s.data[locale]
	if !ok {
		namespaces = make(map[string]map[string]Translation)
		s.data[locale] = namespaces
	}
	entries, ok := namespaces[namespace]
	if !ok {
		entries = make(map[string]Translation)
		namespaces[namespace] = entries
	}

	rec.flatten("", s.keySep, func(key string, t Translation) {
		if _, exists := entries[key]; !exists {
			entries[key] = t
		}
	})
}

// Namespace returns a copy of the flattened namespace.
func (s *Store) Namespace(locale, namespace string) (map[string]Translation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.data[normalize(locale)][normalize(namespace)]
	if !ok {
		return nil, false
	}
	return maps.Clone(entries), true
}

// Namespaces lists every namespace stored for at least one locale, sorted.
func (s *Store) Namespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, namespaces := range s.data {
		for ns := range namespaces {
			seen[ns] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Known reports whether the namespace is required or stored for any locale.
func (s *Store) Known(namespace string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if slices.Contains(s.required, namespace) {
		return true
	}
	for _, namespaces := range s.data {
		if _, ok := namespaces[namespace]; ok {
			return true
		}
	}
	return false
}

// RequiredNamespaces returns a copy of the required set in insertion order.
func (s *Store) RequiredNamespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.required)
}

// Require adds namespaces to the required set. It does not load them.
func (s *Store) Require(namespaces ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ns := range namespaces {
		ns = normalize(ns)
		if ns != "" && !slices.Contains(s.required, ns) {
			s.required = append(s.required, ns)
		}
	}
}

// Drop removes namespaces from the required set. Stored data is kept.
func (s *Store) Drop(namespaces ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ns := range namespaces {
		ns = normalize(ns)
		s.required = slices.DeleteFunc(s.required, func(r string) bool { return r == ns })
	}
}

// Missing filters namespaces down to the deduplicated ones not yet stored for the locale.
func (s *Store) Missing(locale string, namespaces []string) []string {
	locale = normalize(locale)

	s.mu.RLock()
	defer s.mu.RUnlock()

	missing := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		ns = normalize(ns)
		if ns == "" || slices.Contains(missing, ns) {
			continue
		}
		if _, loaded := s.data[locale][ns]; loaded {
			continue
		}
		missing = append(missing, ns)
	}
	return missing
}
