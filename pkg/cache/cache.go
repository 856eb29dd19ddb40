package cache

import "sync"

// Cache remembers the last Limit keys, forgetting the oldest first
type Cache struct {
	mu      sync.Mutex
	Slab    map[string]bool
	List    []string
	Limit   int
	Counter int
}

// New returns an empty Cache holding at most limit keys
func New(limit int) *Cache {
	return &Cache{Slab: make(map[string]bool), Limit: limit}
}

func (c *Cache) InCache(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Slab[key]
	return ok
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Slab = make(map[string]bool)
	c.List = c.List[:0]
	c.Counter = 0
}

func (c *Cache) StoreCache(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key)
}

// StoreIfAbsent stores key and reports whether it was missing
func (c *Cache) StoreIfAbsent(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Slab[key] {
		return false
	}
	c.store(key)
	return true
}

func (c *Cache) store(key string) {
	if c.Slab[key] {
		return
	}
	c.Slab[key] = true
	c.List = append(c.List, key)
	if c.Counter >= c.Limit {
		delete(c.Slab, c.List[0])
		c.List = c.List[1:]
		c.Counter--
	}
	c.Counter++
}
