package texture

import (
	"sync"

	"planet-texgen/internal/buffer"
)

// Cache is a concurrency-safe map cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	grid *buffer.Color
	err  error // load failure, remembered so it is not retried
}

// NewCache creates a new map cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a map by name. Returns nil if not found or
// undecodable.
func (c *Cache) Resolve(name string) *buffer.Color {
	g, _ := c.Load(name)
	return g
}

// Load is Resolve with the load error. A missing map yields (nil, nil).
func (c *Cache) Load(name string) (*buffer.Color, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.grid, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	g, err := LoadColor(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.grid, entry.err
	}
	c.items[path] = &cacheEntry{grid: g, err: err}
	return g, err
}
