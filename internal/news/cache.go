package news

import (
	"sync"
	"time"
)

type cacheEntry struct {
	at       time.Time
	articles []Article
}

// Cache holds fetched article sets keyed by (limit, relaxed). Entries older
// than the ttl are treated as stale and refetched; nothing is ever evicted
// (the key space is bounded by limit 1..5 and the relaxed flag).
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache creates a cache; now is injectable for tests and defaults to
// time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached articles for key when the entry is still fresh.
func (c *Cache) Get(key string) ([]Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.at) >= c.ttl {
		return nil, false
	}
	return e.articles, true
}

// Put stores (or overwrites) the articles for key with the current timestamp.
func (c *Cache) Put(key string, articles []Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{at: c.now(), articles: articles}
}
