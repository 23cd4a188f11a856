// Package querycache provides a keyed collection cache with a staleness
// window, deduplicated loads, and optimistic patching. List services
// keep one cache per entity, keyed by the request parameters that shape
// the collection.
package querycache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fetches a fresh collection for a key.
type Loader[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	value   T
	ticket  uint64
	expires time.Time
}

// Cache is a TTL-bounded key-value store for fetched collections.
//
// Writes are ordered by per-key tickets issued at request time, so a
// fetch that was superseded by a newer fetch, an optimistic patch, or a
// manual Set can never overwrite the newer state, regardless of when
// its response arrives.
type Cache[T any] struct {
	ttl     time.Duration
	metrics *Metrics

	mu      sync.Mutex
	items   map[string]entry[T]
	tickets map[string]uint64
	subs    map[string][]chan struct{}

	flights singleflight.Group
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithMetrics records hit/miss counts against the given collector.
func WithMetrics[T any](m *Metrics) Option[T] {
	return func(c *Cache[T]) { c.metrics = m }
}

// New constructs a cache whose entries stay fresh for ttl.
func New[T any](ttl time.Duration, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		ttl:     ttl,
		items:   make(map[string]entry[T]),
		tickets: make(map[string]uint64),
		subs:    make(map[string][]chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key when present and fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok || time.Now().After(item.expires) {
		if ok {
			delete(c.items, key)
		}
		var zero T
		return zero, false
	}
	return item.value, true
}

// Fetch returns the fresh cached value for key, or runs loader to
// obtain one. Concurrent fetches for the same key share a single
// loader call. A failed load leaves the cache untouched.
func (c *Cache[T]) Fetch(ctx context.Context, key string, loader Loader[T]) (T, error) {
	if value, ok := c.Get(key); ok {
		if c.metrics != nil {
			c.metrics.hit()
		}
		return value, nil
	}
	if c.metrics != nil {
		c.metrics.miss()
	}

	result := c.flights.DoChan(key, func() (interface{}, error) {
		// The ticket is taken when the load starts, not when it
		// resolves, so a slow response loses to anything newer.
		ticket := c.issueTicket(key)
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value, ticket)
		return value, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Set overwrites the value for key, superseding any in-flight load.
func (c *Cache[T]) Set(key string, value T) {
	c.store(key, value, c.issueTicket(key))
}

// Patch applies fn to the cached value for key and stores the result,
// superseding any in-flight load. It reports whether a cached value
// existed; missing or expired entries are left for the next fetch.
func (c *Cache[T]) Patch(key string, fn func(T) T) bool {
	c.mu.Lock()
	item, ok := c.items[key]
	if !ok || time.Now().After(item.expires) {
		c.mu.Unlock()
		return false
	}
	c.tickets[key]++
	c.items[key] = entry[T]{
		value:   fn(item.value),
		ticket:  c.tickets[key],
		expires: time.Now().Add(c.ttl),
	}
	subs := append([]chan struct{}(nil), c.subs[key]...)
	c.mu.Unlock()

	notify(subs)
	return true
}

// Invalidate drops the entry for key so the next fetch reloads it. Any
// load already in flight is abandoned: its response will not be cached.
func (c *Cache[T]) Invalidate(key string) {
	c.flights.Forget(key)

	c.mu.Lock()
	delete(c.items, key)
	c.tickets[key]++
	subs := append([]chan struct{}(nil), c.subs[key]...)
	c.mu.Unlock()

	notify(subs)
}

// Bust drops every entry.
func (c *Cache[T]) Bust() {
	c.mu.Lock()
	var subs []chan struct{}
	for key := range c.items {
		c.tickets[key]++
		subs = append(subs, c.subs[key]...)
	}
	c.items = make(map[string]entry[T])
	c.mu.Unlock()

	notify(subs)
}

// Subscribe delivers a notification whenever the value for key changes.
// The returned cancel func releases the subscription.
func (c *Cache[T]) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.mu.Lock()
	c.subs[key] = append(c.subs[key], ch)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		channels := c.subs[key]
		for i, sub := range channels {
			if sub == ch {
				c.subs[key] = append(channels[:i], channels[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

func (c *Cache[T]) issueTicket(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickets[key]++
	return c.tickets[key]
}

// store applies a write only when no newer write happened since the
// ticket was issued. Last-requested wins, not last-resolved.
func (c *Cache[T]) store(key string, value T, ticket uint64) {
	c.mu.Lock()
	if item, ok := c.items[key]; ok && item.ticket > ticket {
		c.mu.Unlock()
		return
	}
	if c.tickets[key] > ticket {
		c.mu.Unlock()
		return
	}
	c.items[key] = entry[T]{value: value, ticket: ticket, expires: time.Now().Add(c.ttl)}
	subs := append([]chan struct{}(nil), c.subs[key]...)
	c.mu.Unlock()

	notify(subs)
}

func notify(subs []chan struct{}) {
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
