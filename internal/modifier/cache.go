package modifier

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes parse results keyed by the exact input text. Both
// successful and failed parses are stored. Entries carry no provenance;
// the parser stamps the caller's Source on every copy it hands out.
//
// Thread-safe: lookups take a read lock, concurrent misses for the same
// text are collapsed into a single parse.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	mods []Modifier
	ok   bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry, 1024)}
}

// Len returns the number of memoized inputs, hits and misses alike.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) get(text string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[text]
	return e, ok
}

// load returns the memoized entry for text, calling parse on a miss.
// The returned slice is shared and must be cloned before leaving the
// package.
func (c *Cache) load(text string, parse func() ([]Modifier, bool)) cacheEntry {
	if e, ok := c.get(text); ok {
		return e
	}
	v, _, _ := c.group.Do(text, func() (any, error) {
		if e, ok := c.get(text); ok {
			return e, nil
		}
		mods, ok := parse()
		e := cacheEntry{mods: mods, ok: ok}
		c.mu.Lock()
		c.entries[text] = e
		c.mu.Unlock()
		return e, nil
	})
	return v.(cacheEntry)
}
