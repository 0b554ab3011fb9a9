package textnorm

import "slices"

// fifoCache memoizes normalization results with insertion-order eviction.
// The first key inserted is the first evicted, regardless of how recently
// it was read. Not safe for concurrent use; the engine processes one query
// at a time.
type fifoCache struct {
	capacity int
	order    []string
	entries  map[string][]string
}

func newFIFOCache(capacity int) *fifoCache {
	if capacity < 1 {
		capacity = 1
	}
	return &fifoCache{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		entries:  make(map[string][]string, capacity),
	}
}

// get returns a copy of the cached tokens, so callers cannot mutate the
// cached slice.
func (c *fifoCache) get(key string) ([]string, bool) {
	tokens, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(tokens), true
}

func (c *fifoCache) put(key string, tokens []string) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = slices.Clone(tokens)
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.order = append(c.order, key)
	c.entries[key] = slices.Clone(tokens)
}

func (c *fifoCache) len() int {
	return len(c.entries)
}
