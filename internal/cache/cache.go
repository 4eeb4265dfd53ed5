// Package cache is a small in-memory response cache with a fixed time-to-live.
//
// Entries are keyed by the fully-qualified request URL. An entry is fresh while
// now - FetchedAt < TTL; stale entries read as absent and are overwritten by the
// next Set. Two callers that miss on the same key both fetch and the last Set
// wins; that is accepted for read-mostly reference data.
//
// A cache built WithStore also writes every Save through to a durable Store
// and falls back to it on a memory miss, so entries outlive the process.
package cache

import (
	"sync"
	"time"
)

// Entry is one cached payload.
type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

// Stats counts lookups since construction. Restored counts memory misses
// answered from the durable store.
type Stats struct {
	Hits     int64
	Misses   int64
	Stale    int64
	Restored int64
	Keys     int
}

// Cache maps request identity to payload. Safe for concurrent use.
type Cache struct {
	name    string
	ttl     time.Duration
	now     func() time.Time
	store   Store
	mu      sync.RWMutex
	entries map[string]Entry
	stats   Stats
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(name string, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		name:    name,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Name() string { return c.name }

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the payload for key if it is still fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		c.stats.Misses++
		c.stats.Stale++
		return nil, false
	}
	c.stats.Hits++
	return entry.Payload, true
}

// Set stores payload under key stamped with the current time.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Key: key, Payload: payload, FetchedAt: c.now()}
}

// Purge drops every stale entry and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.FetchedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Keys = len(c.entries)
	return s
}
