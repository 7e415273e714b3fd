package internal

import (
	"slices"
	"sync"
)

// EventKind identifies a lifecycle event.
type EventKind uint8

const (
	// EventInitialized fires once, after Init or InitSync completes.
	EventInitialized EventKind = iota + 1
	// EventLocaleUpdated fires after the active locale changed.
	EventLocaleUpdated
	// EventNamespacesLoaded fires after a loader call stored at least one namespace.
	EventNamespacesLoaded
)

func (k EventKind) String() string {
	switch k {
	case EventInitialized:
		return "initialized"
	case EventLocaleUpdated:
		return "locale_updated"
	case EventNamespacesLoaded:
		return "namespaces_loaded"
	default:
		return "unknown"
	}
}

// Event is the payload delivered to listeners.
type Event struct {
	// Locale is the active locale for Initialized and LocaleUpdated,
	// and the locale the data was loaded for with NamespacesLoaded.
	Locale string
	// PreviousLocale is set for LocaleUpdated.
	PreviousLocale string
	// Namespaces is set for NamespacesLoaded.
	Namespaces []string
	Kind       EventKind
}

// Listener receives events. Listeners run synchronously on the emitting goroutine.
type Listener func(Event)

type subscription struct {
	fn Listener
	id uint64
}

// Events is a per-instance publish/subscribe registry.
type Events struct {
	listeners map[EventKind][]subscription
	nextID    uint64
	mu        sync.Mutex
}

// NewEvents creates an empty registry.
func NewEvents() *Events {
	return &Events{listeners: make(map[EventKind][]subscription)}
}

// On registers a listener and returns a function removing it.
// The returned function reports whether the listener was still registered.
func (e *Events) On(kind EventKind, fn Listener) func() bool {
	if fn == nil {
		return func() bool { return false }
	}

	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners[kind] = append(e.listeners[kind], subscription{id: id, fn: fn})
	e.mu.Unlock()

	return func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		before := len(e.listeners[kind])
		e.listeners[kind] = slices.DeleteFunc(e.listeners[kind], func(s subscription) bool { return s.id == id })
		return len(e.listeners[kind]) < before
	}
}

// Off removes every listener of the kind and reports whether any existed.
func (e *Events) Off(kind EventKind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.listeners[kind])
	delete(e.listeners, kind)
	return n > 0
}

// Emit delivers ev to the listeners registered for its kind, in registration order.
func (e *Events) Emit(ev Event) {
	e.mu.Lock()
	subs := slices.Clone(e.listeners[ev.Kind])
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}
