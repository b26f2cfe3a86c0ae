package query

import (
	"container/list"
	"sync"
)

// routeKey identifies a node-to-node search. SearchOptions is part of the key
// because filters and penalties change the result.
type routeKey struct {
	from string
	to   string
	opts SearchOptions
}

type cacheEntry struct {
	key   routeKey
	route *Route
}

// routeCache is an LRU of finished searches. Misses are cached too, as a nil route.
// Cached routes are shared between callers and must not be modified.
type routeCache struct {
	capacity int
	ll       *list.List
	entries  map[routeKey]*list.Element
	mu       sync.Mutex
	hits     int64
	misses   int64
}

func newRouteCache(capacity int) *routeCache {
	if capacity <= 0 {
		return nil
	}
	return &routeCache{
		capacity: capacity,
		ll:       list.New(),
		entries:  make(map[routeKey]*list.Element),
	}
}

func (c *routeCache) get(key routeKey) (*Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.hits++
	return el.Value.(*cacheEntry).route, true
}

func (c *routeCache) put(key routeKey, route *Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).route = route
		c.ll.MoveToFront(el)
		return
	}
	c.entries[key] = c.ll.PushFront(&cacheEntry{key: key, route: route})
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// CacheStats reports route cache usage.
type CacheStats struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Size     int   `json:"size"`
	Capacity int   `json:"capacity"`
}

func (c *routeCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		Size:     c.ll.Len(),
		Capacity: c.capacity,
	}
}
