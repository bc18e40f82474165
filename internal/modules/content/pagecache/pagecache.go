// Package pagecache caches rendered post listing pages in memory.
//
// Entries are keyed by the full set of listing parameters and carry no TTL:
// invalidation is event-driven. Every post mutation clears the whole cache,
// trading hit rate for correctness.
package pagecache

import (
	"fmt"
	"sync"
)

// Key identifies one cached listing page. All parameters that shape the
// response are part of the key.
type Key struct {
	Status string
	Page   int
	Size   int
	Sort   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d:%d:%s", k.Status, k.Page, k.Size, k.Sort)
}

// Cache is a concurrency-safe page cache. The zero value is not usable; use New.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]V)}
}

// GetOrCompute returns the cached snapshot for key, computing and storing it on
// a miss. Concurrent misses for the same key may both compute; the last write
// wins, which is harmless for idempotent listing queries.
func (c *Cache[V]) GetOrCompute(key Key, compute func() (V, error)) (V, error) {
	k := key.String()

	c.mu.RLock()
	if v, ok := c.entries[k]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err := compute()
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	c.entries[k] = v
	c.mu.Unlock()
	return v, nil
}

// InvalidateAll clears every cached page. The write lock guarantees the
// clearing is visible to subsequent reads from any goroutine.
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]V)
	c.mu.Unlock()
}

// Len reports the number of cached pages.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
