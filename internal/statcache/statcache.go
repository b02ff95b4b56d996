// Package statcache caches file modification times per path with a TTL.
// Concurrent misses for the same path share one os.Stat call.
package statcache

import (
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	mtime     time.Time
	expiresAt time.Time
}

// Cache holds modification times keyed by path. Safe for concurrent use.
// A Cache with ttl <= 0 stores nothing and stats on every call.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]entry
	sf      singleflight.Group
}

// New creates a Cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool { return c.ttl > 0 }

// ModTime returns the modification time of path, from cache when a fresh entry exists.
func (c *Cache) ModTime(path string) (time.Time, error) {
	if !c.Enabled() {
		return stat(path)
	}
	c.mu.RLock()
	ent, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && c.now().Before(ent.expiresAt) {
		return ent.mtime, nil
	}
	if ok {
		c.dropExpired(path)
	}
	v, err, _ := c.sf.Do(path, func() (any, error) {
		mtime, err := stat(path)
		if err != nil {
			c.Invalidate(path)
			return nil, err
		}
		c.mu.Lock()
		c.pruneLocked()
		c.entries[path] = entry{mtime: mtime, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return mtime, nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// dropExpired removes the entry for path if it is still expired.
func (c *Cache) dropExpired(path string) {
	c.mu.Lock()
	if ent, ok := c.entries[path]; ok && !c.now().Before(ent.expiresAt) {
		delete(c.entries, path)
	}
	c.mu.Unlock()
}

// pruneLocked removes every expired entry. c.mu must be held for writing.
func (c *Cache) pruneLocked() {
	now := c.now()
	for p, ent := range c.entries {
		if !now.Before(ent.expiresAt) {
			delete(c.entries, p)
		}
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached entries. Expired entries are evicted on the next miss,
// so Len may include some until then.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func stat(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
