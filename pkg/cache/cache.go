// Package cache provides a process-wide in-memory key/value store with
// per-entry expiration. It shields rate-limited providers from duplicate
// upstream calls; correctness never depends on a hit, so cache operations
// never fail.
package cache

import (
	"sync"
	"time"
)

// TTL tiers by data volatility. Callers pick the tier through their key
// namespace; the cache itself knows nothing about what it stores.
const (
	TTLQuote   = 1 * time.Minute // real-time-ish quotes
	TTLMarket  = 5 * time.Minute // index/indicator/commodity snapshots
	TTLMetrics = 1 * time.Hour   // fundamentals
	TTLProfile = 24 * time.Hour  // static company data
)

// entry is one stored value. Entries are immutable once written; Set
// replaces them wholesale.
type entry struct {
	value     any
	createdAt time.Time
	expiresAt time.Time
}

// Cache is a TTL-keyed store safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Get returns the value stored under key. An expired entry behaves
// exactly like a miss and is evicted as a side effect.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		// Lazy eviction. Re-check under the write lock: a concurrent Set
		// may have refreshed the key since the read above.
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key, replacing any prior entry and resetting
// its expiration from now.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

// Delete removes the entry for key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Cleanup sweeps all expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats describes current cache contents for diagnostics.
type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Stats returns the current entry count and key list. Expired-but-not-
// yet-evicted entries are included; call Cleanup first for exact counts.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return Stats{Size: len(c.entries), Keys: keys}
}

// GetTyped returns the value under key if it is present, unexpired, and
// of type T. A type mismatch counts as a miss; the entry is left alone.
func GetTyped[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
