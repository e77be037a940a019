package client

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/example/smallfs/pkg/fs"
)

// AttrCache caches file attributes by path
type AttrCache struct {
	mu      sync.RWMutex
	maxSize int
	lru     *expirable.LRU[string, fs.FileInfo]
}

// NewAttrCache creates a new attributes cache. A non-positive ttl
// disables caching.
func NewAttrCache(maxSize int, ttl time.Duration) *AttrCache {
	c := &AttrCache{maxSize: maxSize}
	c.reset(ttl)
	return c
}

func (c *AttrCache) reset(ttl time.Duration) {
	if ttl <= 0 {
		c.lru = nil
		return
	}
	c.lru = expirable.NewLRU[string, fs.FileInfo](c.maxSize, nil, ttl)
}

// Store stores attributes for a path
func (c *AttrCache) Store(path string, info fs.FileInfo) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lru != nil {
		c.lru.Add(path, info)
	}
}

// Get retrieves attributes for a path
func (c *AttrCache) Get(path string) (fs.FileInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lru == nil {
		return fs.FileInfo{}, false
	}
	return c.lru.Get(path)
}

// Len returns the number of cached entries
func (c *AttrCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry
func (c *AttrCache) Purge() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lru != nil {
		c.lru.Purge()
	}
}

// SetTTL replaces the cache with an empty one using ttl
func (c *AttrCache) SetTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(ttl)
}

// ClearCache clears all cached attributes
func (c *Client) ClearCache() {
	c.attrCache.Purge()
}

// SetCacheTTL sets the time-to-live for cache entries
func (c *Client) SetCacheTTL(duration time.Duration) {
	c.config.CacheTTL = duration
	c.attrCache.SetTTL(duration)
}
