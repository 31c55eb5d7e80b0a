package optimize

import (
	"container/list"
	"context"
	"sync"

	"lexdiff/internal/diff"
)

const defaultCacheCapacity = 256

// MemoryCache is a bounded LRU cache of computed diffs. Guarded by a mutex
// so a shared instance is safe; eviction order is a bookkeeping detail, not
// a contract.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key  string
	diff *diff.StatuteDiff
}

// NewMemoryCache builds a cache holding up to capacity diffs; non-positive
// capacities fall back to the default.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*diff.StatuteDiff, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).diff.Clone(), true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, d *diff.StatuteDiff) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).diff = d.Clone()
		c.order.MoveToFront(elem)
		return nil
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, diff: d.Clone()})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	return nil
}

// Len reports the number of cached diffs.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
