package cache

import (
	"container/list"
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/translations"
)

type entry struct {
	expiresAt time.Time // zero value = never expires
	rec       translations.Record
	key       string
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process namespace cache with TTL expiration and optional
// LRU eviction when a maximum entry count is configured.
//
// Records are stored as given, so function translations survive.
// The most recently used namespaces are at the front of the eviction list.
type Memory struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	onEvict  func(locale, namespace string)
	done     chan struct{}
	sf       singleflight.Group
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory(
//	    cache.WithDefaultTTL(10 * time.Minute),
//	    cache.WithMaxEntries(500),
//	)
//	defer c.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// OnEvict sets a callback invoked when a namespace leaves the cache through
// LRU eviction, expiry, Delete or Clear. It runs with the cache locked and
// must not call back into the cache.
func (m *Memory) OnEvict(fn func(locale, namespace string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Len returns the number of cached namespaces, expired ones included until
// they are swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Get returns a copy of the cached record and marks it as recently used.
func (m *Memory) Get(_ context.Context, locale, namespace string) (translations.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[Key(locale, namespace)]
	if !ok {
		return nil, ErrNotFound
	}

	e := elem.Value.(*entry)
	if e.expired(time.Now()) {
		m.remove(elem)
		return nil, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return maps.Clone(e.rec), nil
}

// Set stores rec. TTL semantics: positive = expires after duration,
// zero = default TTL, negative = never expires.
func (m *Memory) Set(_ context.Context, locale, namespace string, rec translations.Record, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	key := Key(locale, namespace)
	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry)
		e.rec = maps.Clone(rec)
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&entry{key: key, rec: maps.Clone(rec), expiresAt: expiresAt})
	return nil
}

// Delete removes a namespace.
func (m *Memory) Delete(_ context.Context, locale, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[Key(locale, namespace)]; ok {
		m.remove(elem)
	}
	return nil
}

// Has reports whether a namespace is cached and has not expired.
func (m *Memory) Has(_ context.Context, locale, namespace string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[Key(locale, namespace)]
	if !ok {
		return false, nil
	}
	if elem.Value.(*entry).expired(time.Now()) {
		m.remove(elem)
		return false, nil
	}
	return true, nil
}

// Clear removes all entries.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for elem := m.eviction.Front(); elem != nil; {
		next := elem.Next()
		m.remove(elem)
		elem = next
	}
	return nil
}

// Close stops the janitor and marks the cache as closed. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes expired entries from the back of the list.
func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove drops elem and fires the eviction callback. Caller must hold the mutex.
func (m *Memory) remove(elem *list.Element) {
	m.eviction.Remove(elem)
	e := elem.Value.(*entry)
	delete(m.items, e.key)

	if m.onEvict != nil {
		locale, namespace, _ := strings.Cut(e.key, "/")
		m.onEvict(locale, namespace)
	}
}

func (m *Memory) flight() *singleflight.Group { return &m.sf }

var _ Cache = (*Memory)(nil)
