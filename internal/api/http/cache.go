package httpapi

import (
	"sync"
	"time"
)

type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a small TTL cache. Reading an item extends its TTL.
type Cache[K comparable, V any] struct {
	items map[K]*cacheItem[V]
	ttl   time.Duration
	mutex sync.Mutex
	now   func() time.Time
}

func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*cacheItem[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the value for key and whether it was found and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	item, found := c.items[key]
	if !found {
		var zero V
		return zero, false
	}
	now := c.now()
	if now.After(item.expiresAt) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	item.expiresAt = now.Add(c.ttl)
	return item.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &cacheItem[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// DeleteFunc removes every key for which match returns true.
func (c *Cache[K, V]) DeleteFunc(match func(K) bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for k := range c.items {
		if match(k) {
			delete(c.items, k)
		}
	}
}
