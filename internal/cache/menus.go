package cache

import (
	"context"
	"sync"
	"time"

	"bip-go/internal/store"
)

// MenuCache provides cached access to the flat menu item list.
// Entries expire after a short TTL so administrative edits become
// visible without explicit coordination; Invalidate forces an
// immediate reload on the next access.
type MenuCache struct {
	cache    *SimpleCache // stats tracking
	queries  *store.Queries
	ttl      time.Duration
	mu       sync.RWMutex
	items    []store.MenuItem
	loadedAt time.Time
	loaded   bool
}

// NewMenuCache creates a new menu cache with the given TTL.
func NewMenuCache(queries *store.Queries, ttl time.Duration) *MenuCache {
	return &MenuCache{
		cache:   New(ttl),
		queries: queries,
		ttl:     ttl,
	}
}

// Items returns all menu items ordered by sort_order then id.
// Loads from the database on first access or after the TTL has expired.
func (c *MenuCache) Items(ctx context.Context) ([]store.MenuItem, error) {
	c.mu.RLock()
	if c.fresh() {
		items := c.items
		c.mu.RUnlock()
		c.cache.hits.Add(1)
		return items, nil
	}
	c.mu.RUnlock()

	if err := c.loadAll(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	c.cache.misses.Add(1)
	return c.items, nil
}

// fresh reports whether the cached list is present and within TTL.
// Caller must hold at least a read lock.
func (c *MenuCache) fresh() bool {
	return c.loaded && time.Since(c.loadedAt) < c.ttl
}

// loadAll loads all menu items from the database.
func (c *MenuCache) loadAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.fresh() {
		return nil
	}

	items, err := c.queries.ListMenuItems(ctx)
	if err != nil {
		return err
	}

	c.items = items
	c.loadedAt = time.Now()
	c.loaded = true
	c.cache.sets.Add(1)

	return nil
}

// Invalidate clears the cache, forcing a reload on next access.
func (c *MenuCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.items = nil
}

// Stats returns cache statistics.
func (c *MenuCache) Stats() Stats {
	stats := c.cache.Stats()
	c.mu.RLock()
	stats.Items = len(c.items)
	c.mu.RUnlock()
	return stats
}

// ResetStats resets the cache statistics.
func (c *MenuCache) ResetStats() {
	c.cache.ResetStats()
}

// Preload loads all menu items into cache.
// Useful for warming up the cache on startup.
func (c *MenuCache) Preload(ctx context.Context) error {
	return c.loadAll(ctx)
}
