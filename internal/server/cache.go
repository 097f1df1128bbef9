package server

import (
	"sync"

	"planet-texgen/internal/planet"
)

// cacheKey identifies a reproducible planet. Only requests with an
// explicit seed are cached.
type cacheKey struct {
	Profile   string
	Noise     string
	Seed      int64
	Randomize bool
	Width     int
	Height    int
}

func keyOf(o planet.Options) cacheKey {
	return cacheKey{o.Profile, o.Noise, o.Seed, o.Randomize, o.Width, o.Height}
}

// Cache is a concurrency-safe planet cache.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]*planet.Planet
	limit int
}

// NewCache creates a cache holding at most limit planets. A non-positive
// limit disables caching.
func NewCache(limit int) *Cache {
	return &Cache{items: make(map[cacheKey]*planet.Planet), limit: limit}
}

// Resolve returns the cached planet for opts or generates it with gen.
func (c *Cache) Resolve(opts planet.Options, gen func() (*planet.Planet, error)) (*planet.Planet, error) {
	if c.limit <= 0 || opts.Seed == 0 {
		return gen()
	}
	key := keyOf(opts)

	// Fast path: read lock
	c.mu.RLock()
	if p, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	// Slow path: generate
	p, err := gen()
	if err != nil {
		return nil, err
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[key]; exists {
		return existing, nil
	}
	if len(c.items) >= c.limit {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}
	c.items[key] = p
	return p, nil
}

// Len returns the number of cached planets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
