package page

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long a fetched page stays fresh on disk
const DefaultCacheTTL = 24 * time.Hour

// Cache handles disk caching of fetched pages.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates a cache in the given directory
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) cacheFile(url string) string {
	hash := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, fmt.Sprintf("%x.html", hash[:8]))
}

// Get returns cached data if fresh, or nil if stale/missing
func (c *Cache) Get(url string) []byte {
	if c == nil {
		return nil
	}
	path := c.cacheFile(url)
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// Put stores data in the cache
func (c *Cache) Put(url string, data []byte) error {
	if c == nil {
		return nil
	}
	return os.WriteFile(c.cacheFile(url), data, 0644)
}

// Invalidate removes a cached entry
func (c *Cache) Invalidate(url string) {
	if c == nil {
		return
	}
	os.Remove(c.cacheFile(url))
}
