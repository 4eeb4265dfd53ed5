package cache

import (
	"context"
	"errors"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Store is a durable key-value slot. Load returns errs.ErrNotFound when
// nothing has been saved under key. The user state backends satisfy it.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// WithStore writes entries through to store and reads them back on a memory miss.
func WithStore(store Store) Option {
	return func(c *Cache) { c.store = store }
}

type persistedEntry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Payload   []byte    `json:"payload"`
}

// Load is Get with a fallback to the durable store. A fresh stored entry is
// copied into memory with its original fetch time.
func (c *Cache) Load(ctx context.Context, key string) ([]byte, bool) {
	if payload, ok := c.Get(key); ok {
		return payload, true
	}
	if c.store == nil {
		return nil, false
	}

	entry, err := c.loadStored(ctx, key)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			logger.Warn("[%s] durable cache read failed for %s: %v", c.name, key, err)
		}
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		return nil, false
	}
	c.entries[key] = entry
	c.stats.Restored++
	return entry.Payload, true
}

// Save is Set followed by a write to the durable store. A failed write is
// logged; the memory entry stays.
func (c *Cache) Save(ctx context.Context, key string, payload []byte) {
	c.Set(key, payload)
	if c.store == nil {
		return
	}

	c.mu.RLock()
	entry := c.entries[key]
	c.mu.RUnlock()

	data, err := json.Marshal(persistedEntry{FetchedAt: entry.FetchedAt, Payload: entry.Payload})
	if err == nil {
		err = c.store.Save(ctx, c.storeKey(key), data)
	}
	if err != nil {
		logger.Warn("[%s] durable cache write failed for %s: %v", c.name, key, err)
	}
}

func (c *Cache) loadStored(ctx context.Context, key string) (Entry, error) {
	data, err := c.store.Load(ctx, c.storeKey(key))
	if err != nil {
		return Entry{}, err
	}
	var p persistedEntry
	if err := json.Unmarshal(data, &p); err != nil {
		return Entry{}, eris.Wrapf(err, "decode cache entry %s", key)
	}
	return Entry{Key: key, Payload: p.Payload, FetchedAt: p.FetchedAt}, nil
}

func (c *Cache) storeKey(key string) string {
	return "cache:" + c.name + ":" + key
}
