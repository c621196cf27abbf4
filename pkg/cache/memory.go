package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps entries in a map. It is safe for concurrent use. When
// more than max entries are stored, the entry closest to expiry (or the
// oldest, for entries without one) is evicted.
type MemoryCache struct {
	mu      sync.Mutex
	max     int
	seq     uint64
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	data      []byte
	expiresAt time.Time
	seq       uint64
}

// NewMemoryCache creates an in-process cache holding at most max entries.
// A max of zero or less means unbounded.
func NewMemoryCache(max int) *MemoryCache {
	return &MemoryCache{max: max, entries: make(map[string]memEntry), now: time.Now}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	e := memEntry{data: append([]byte(nil), data...), seq: c.seq}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	if c.max > 0 && len(c.entries) > c.max {
		c.evict()
	}
	return nil
}

func (c *MemoryCache) evict() {
	var victim string
	var best memEntry
	first := true
	for k, e := range c.entries {
		if first || older(e, best) {
			victim, best, first = k, e, false
		}
	}
	delete(c.entries, victim)
}

// older reports whether a should be evicted before b.
func older(a, b memEntry) bool {
	switch {
	case !a.expiresAt.IsZero() && !b.expiresAt.IsZero():
		if !a.expiresAt.Equal(b.expiresAt) {
			return a.expiresAt.Before(b.expiresAt)
		}
	case !a.expiresAt.IsZero():
		return true
	case !b.expiresAt.IsZero():
		return false
	}
	return a.seq < b.seq
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memEntry)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Count returns the number of live entries per kind.
func (c *MemoryCache) Count(ctx context.Context) (map[string]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[string]int)
	now := c.now()
	for k, e := range c.entries {
		if e.expiresAt.IsZero() || !now.After(e.expiresAt) {
			counts[KeyKind(k)]++
		}
	}
	return counts, nil
}

// Close does nothing for memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
	_ Counter = (*MemoryCache)(nil)
)
