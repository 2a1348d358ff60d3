package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type memEntry[V any] struct {
	expiresAt time.Time // zero means no expiry
	ttl       time.Duration
	value     V
	key       string
}

// Memory is an in-process cache with per-entry TTL and optional LRU
// eviction once a maximum entry count is reached.
//
// The front of the eviction list holds the most recently used entry.
type Memory[V any] struct {
	clock   clockwork.Clock
	items   map[string]*list.Element
	lru     *list.List
	onEvict func(key string, value V)
	done    chan struct{}

	defaultTTL time.Duration
	janitorInt time.Duration
	maxEntries int
	sliding    bool

	mu     sync.Mutex
	closed bool
}

// MemoryOption configures a Memory cache.
type MemoryOption[V any] func(*Memory[V])

// WithDefaultTTL sets the TTL used when Set is called with zero.
// Defaults to one hour.
func WithDefaultTTL[V any](d time.Duration) MemoryOption[V] {
	return func(m *Memory[V]) { m.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are swept.
// Zero disables the background sweep; expired entries are then dropped lazily.
func WithCleanupInterval[V any](d time.Duration) MemoryOption[V] {
	return func(m *Memory[V]) { m.janitorInt = d }
}

// WithMaxEntries caps the number of entries. Zero means unlimited.
func WithMaxEntries[V any](n int) MemoryOption[V] {
	return func(m *Memory[V]) { m.maxEntries = n }
}

// WithSlidingTTL makes every successful Get push the entry's expiry forward
// by its original TTL.
func WithSlidingTTL[V any]() MemoryOption[V] {
	return func(m *Memory[V]) { m.sliding = true }
}

// WithEvictCallback registers fn to be called whenever an entry leaves the
// cache, whether through expiry, LRU pressure or Delete.
// fn runs with the cache lock held and must not call back into the cache.
func WithEvictCallback[V any](fn func(key string, value V)) MemoryOption[V] {
	return func(m *Memory[V]) { m.onEvict = fn }
}

// WithClock replaces the wall clock. Used by tests.
func WithClock[V any](c clockwork.Clock) MemoryOption[V] {
	return func(m *Memory[V]) {
		if c != nil {
			m.clock = c
		}
	}
}

// NewMemory creates an in-memory cache.
//
// Example:
//
//	traps := cache.NewMemory(
//	    cache.WithDefaultTTL[*boundary.Trap](30*time.Minute),
//	    cache.WithSlidingTTL[*boundary.Trap](),
//	    cache.WithMaxEntries[*boundary.Trap](50_000),
//	)
//	defer traps.Close()
func NewMemory[V any](opts ...MemoryOption[V]) *Memory[V] {
	m := &Memory[V]{
		clock:      clockwork.NewRealClock(),
		items:      make(map[string]*list.Element),
		lru:        list.New(),
		done:       make(chan struct{}),
		defaultTTL: time.Hour,
		janitorInt: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.janitorInt > 0 {
		go m.janitor()
	}
	return m
}

// Get returns the value stored under key, or ErrNotFound.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}

	e := elem.Value.(*memEntry[V])
	now := m.clock.Now()
	if e.expired(now) {
		m.remove(elem)
		return zero, ErrNotFound
	}

	if m.sliding && e.ttl > 0 {
		e.expiresAt = now.Add(e.ttl)
	}
	m.lru.MoveToFront(elem)
	return e.value, nil
}

// Set stores value under key. See Cache for TTL semantics.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.clock.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memEntry[V])
		e.value, e.ttl, e.expiresAt = value, ttl, expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		if oldest := m.lru.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.items[key] = m.lru.PushFront(&memEntry[V]{
		key:       key,
		value:     value,
		ttl:       ttl,
		expiresAt: expiresAt,
	})
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. It is safe to call more than once.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory[V]) janitor() {
	ticker := m.clock.NewTicker(m.janitorInt)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.Chan():
			m.sweep()
		}
	}
}

func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memEntry[V]).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

func (m *Memory[V]) remove(elem *list.Element) {
	e := m.lru.Remove(elem).(*memEntry[V])
	delete(m.items, e.key)
	if m.onEvict != nil {
		m.onEvict(e.key, e.value)
	}
}

func (e *memEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
