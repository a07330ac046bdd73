package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/suryansh-23/subspot/internal/subtitle"
)

// Entry stores the decoded records of one subtitle file.
type Entry struct {
	Path    string
	ModTime time.Time
	Size    int64
	Records []subtitle.Record

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Fresh reports whether the entry still describes a file with the given
// modification time and size.
func (e Entry) Fresh(modTime time.Time, size int64) bool {
	return e.ModTime.Equal(modTime) && e.Size == size
}

// Cache stores decoded files in-memory with TTL and LRU eviction.
type Cache struct {
	mu         sync.Mutex
	lru        *list.List
	byPath     map[string]*list.Element
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	hits       int
	misses     int
}

// New creates a new cache with bounds. A zero ttl disables caching.
func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = 32
	}
	return &Cache{
		lru:        list.New(),
		byPath:     make(map[string]*list.Element),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Put stores an entry, replacing any previous entry for the same path.
func (c *Cache) Put(entry Entry) {
	if c == nil || c.ttl <= 0 || entry.Path == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(c.ttl)
	if elem, ok := c.byPath[entry.Path]; ok {
		c.lru.Remove(elem)
	}
	c.byPath[entry.Path] = c.lru.PushFront(entry)
	c.evictLocked()
}

// Get returns the entry for path if present and not expired.
func (c *Cache) Get(path string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.byPath[path]
	if !ok {
		c.misses++
		return Entry{}, false
	}
	entry := elem.Value.(Entry)
	if c.now().After(entry.ExpiresAt) {
		c.lru.Remove(elem)
		delete(c.byPath, path)
		c.misses++
		return Entry{}, false
	}
	c.lru.MoveToFront(elem)
	c.hits++
	return entry, true
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.byPath[path]; ok {
		c.lru.Remove(elem)
		delete(c.byPath, path)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked()
	return c.lru.Len()
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// SetTTL updates the TTL for future entries.
func (c *Cache) SetTTL(ttl time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

func (c *Cache) evictLocked() {
	c.evictExpiredLocked()
	for c.lru.Len() > c.maxEntries {
		back := c.lru.Back()
		if back == nil {
			return
		}
		delete(c.byPath, back.Value.(Entry).Path)
		c.lru.Remove(back)
	}
}

func (c *Cache) evictExpiredLocked() {
	now := c.now()
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		entry := elem.Value.(Entry)
		if now.After(entry.ExpiresAt) {
			delete(c.byPath, entry.Path)
			c.lru.Remove(elem)
		}
		elem = prev
	}
}
