// Package rendercache provides a bounded in-memory LRU cache of rendered
// entry bodies.
//
// # Overview
//
// Rendering an entry runs every subscribed plugin handler over its body,
// which can be expensive for Lua plugins. The cache keys rendered output by
// blog, entry, and entry revision, so any update to an entry naturally
// invalidates its cached rendering: the revision changes and the stale key
// falls out of the LRU.
//
// # Keys
//
// Keys look like "devblog/2f9c...@1724316000000000000". Build them with
// Key rather than by hand.
package rendercache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/observability"
)

// Cache is a thread-safe LRU of rendered entry bodies
type Cache struct {
	cache   *lru.LRU[string, string]
	metrics *observability.Metrics
}

// New creates a render cache holding up to size rendered bodies
func New(size int, metrics *observability.Metrics) *Cache {
	if size <= 0 {
		size = 1
	}

	c := &Cache{metrics: metrics}
	c.cache = lru.NewLRU[string, string](size, c.onEvict, 0)
	return c
}

// onEvict counts entries pushed out by the LRU
func (c *Cache) onEvict(key string, rendered string) {
	if c.metrics != nil {
		c.metrics.RenderCacheEvictionsTotal.Inc()
	}
}

// Key builds the cache key for an entry's current revision
func Key(b *blog.Blog, e *blog.Entry) string {
	return fmt.Sprintf("%s/%s@%d", b.ID, e.ID, e.Revision())
}

// Get retrieves a cached rendered body
func (c *Cache) Get(key string) (string, bool) {
	rendered, ok := c.cache.Get(key)
	if !ok {
		if c.metrics != nil {
			c.metrics.RenderCacheMissesTotal.Inc()
		}
		return "", false
	}

	if c.metrics != nil {
		c.metrics.RenderCacheHitsTotal.Inc()
	}
	return rendered, true
}

// Add stores a rendered body
func (c *Cache) Add(key string, rendered string) {
	c.cache.Add(key, rendered)
}

// Purge drops every cached rendering
func (c *Cache) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached renderings
func (c *Cache) Len() int {
	return c.cache.Len()
}
