package api

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Key identifies one cached read: a resource kind plus its parameter tuple.
type Key struct {
	Resource Resource
	Params   []string
}

func NewKey(resource Resource, params ...any) Key {
	key := Key{Resource: resource}
	for _, param := range params {
		key.Params = append(key.Params, fmt.Sprint(param))
	}
	return key
}

func (k Key) String() string {
	var b strings.Builder
	b.WriteString(string(k.Resource))
	for _, param := range k.Params {
		b.WriteByte('|')
		b.WriteString(url.QueryEscape(param))
	}
	return b.String()
}

// Covers reports whether other is k or one of its parameter extensions.
func (k Key) Covers(other Key) bool {
	if k.Resource != other.Resource || len(k.Params) > len(other.Params) {
		return false
	}
	for i, param := range k.Params {
		if other.Params[i] != param {
			return false
		}
	}
	return true
}

type cacheEntry struct {
	key      Key
	value    any
	storedAt time.Time
}

// Cache holds read results per key. An invalidation advances the generation
// of the resources it touches and a reset advances all of them; writes tagged
// with an older generation are dropped so a read that started before either
// cannot repopulate the cache.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]cacheEntry
	resets    uint64
	resources map[Resource]uint64
	now       func() time.Time
}

func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries:   make(map[string]cacheEntry),
		resources: make(map[Resource]uint64),
		now:       now,
	}
}

// Get returns the value stored under key if it is younger than maxAge.
func (c *Cache) Get(key Key, maxAge time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= maxAge {
		return nil, false
	}
	return entry.value, true
}

// Generation identifies the state of key's resource. Both counters only grow,
// so their sum changes whenever either does.
func (c *Cache) Generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generationOf(key.Resource)
}

func (c *Cache) generationOf(resource Resource) uint64 {
	return c.resets + c.resources[resource]
}

// Set stores value under key unless key's resource was invalidated after
// generation was observed. It reports whether the value was stored.
func (c *Cache) Set(generation uint64, key Key, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generationOf(key.Resource) {
		return false
	}
	c.entries[key.String()] = cacheEntry{key: key, value: value, storedAt: c.now()}
	return true
}

// Invalidate drops every entry covered by one of the prefixes and returns
// how many were removed.
func (c *Cache) Invalidate(prefixes ...Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, prefix := range prefixes {
		c.resources[prefix.Resource]++
	}
	removed := 0
	for id, entry := range c.entries {
		for _, prefix := range prefixes {
			if prefix.Covers(entry.key) {
				delete(c.entries, id)
				removed++
				break
			}
		}
	}
	return removed
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resets++
	c.entries = make(map[string]cacheEntry)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
