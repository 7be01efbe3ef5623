// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"time"

	"bip-go/internal/store"
)

// SettingsCache provides cached access to site settings.
// It loads all settings once and serves them from memory,
// with invalidation on updates.
type SettingsCache struct {
	cache   *SimpleCache
	queries *store.Queries
	mu      sync.RWMutex
	loaded  bool

	// Store all settings as map for bulk access
	allSettings map[string]store.SiteSetting
}

// NewSettingsCache creates a new settings cache.
// TTL is set to 1 hour but cache is invalidated on any settings change.
func NewSettingsCache(queries *store.Queries) *SettingsCache {
	return &SettingsCache{
		cache:       New(time.Hour), // Long TTL, manually invalidated
		queries:     queries,
		allSettings: make(map[string]store.SiteSetting),
	}
}

// Get retrieves a setting value by key.
// Returns empty string if not found.
func (c *SettingsCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	if c.loaded {
		if s, ok := c.allSettings[key]; ok {
			c.mu.RUnlock()
			c.cache.hits.Add(1)
			return s.Value, nil
		}
		c.mu.RUnlock()
		c.cache.misses.Add(1)
		return "", nil
	}
	c.mu.RUnlock()

	// Need to load
	if err := c.loadAll(ctx); err != nil {
		return "", err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.allSettings[key]; ok {
		c.cache.hits.Add(1)
		return s.Value, nil
	}
	c.cache.misses.Add(1)
	return "", nil
}

// GetSetting retrieves a full setting entry by key.
func (c *SettingsCache) GetSetting(ctx context.Context, key string) (store.SiteSetting, bool, error) {
	c.mu.RLock()
	if c.loaded {
		s, ok := c.allSettings[key]
		c.mu.RUnlock()
		if ok {
			c.cache.hits.Add(1)
		} else {
			c.cache.misses.Add(1)
		}
		return s, ok, nil
	}
	c.mu.RUnlock()

	// Need to load
	if err := c.loadAll(ctx); err != nil {
		return store.SiteSetting{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.allSettings[key]
	if ok {
		c.cache.hits.Add(1)
	} else {
		c.cache.misses.Add(1)
	}
	return s, ok, nil
}

// GetMultiple retrieves multiple setting values by keys.
func (c *SettingsCache) GetMultiple(ctx context.Context, keys ...string) (map[string]string, error) {
	c.mu.RLock()
	if !c.loaded {
		c.mu.RUnlock()
		if err := c.loadAll(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
	}
	defer c.mu.RUnlock()

	result := make(map[string]string, len(keys))
	for _, key := range keys {
		if s, ok := c.allSettings[key]; ok {
			result[key] = s.Value
		}
	}
	return result, nil
}

// All returns all setting values.
func (c *SettingsCache) All(ctx context.Context) (map[string]string, error) {
	c.mu.RLock()
	if !c.loaded {
		c.mu.RUnlock()
		if err := c.loadAll(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
	}
	defer c.mu.RUnlock()

	result := make(map[string]string, len(c.allSettings))
	for key, s := range c.allSettings {
		result[key] = s.Value
	}
	return result, nil
}

// loadAll loads all settings from database.
func (c *SettingsCache) loadAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.loaded {
		return nil
	}

	settings, err := c.queries.ListSettings(ctx)
	if err != nil {
		return err
	}

	c.allSettings = make(map[string]store.SiteSetting, len(settings))
	for _, s := range settings {
		c.allSettings[s.Key] = s
	}
	c.loaded = true
	c.cache.sets.Add(1)

	return nil
}

// Invalidate clears the cache, forcing a reload on next access.
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.allSettings = make(map[string]store.SiteSetting)
}

// Stats returns cache statistics.
func (c *SettingsCache) Stats() Stats {
	stats := c.cache.Stats()
	c.mu.RLock()
	stats.Items = len(c.allSettings)
	c.mu.RUnlock()
	return stats
}

// ResetStats resets the cache statistics.
func (c *SettingsCache) ResetStats() {
	c.cache.ResetStats()
}

// Preload loads all settings into cache.
// Useful for warming up the cache on startup.
func (c *SettingsCache) Preload(ctx context.Context) error {
	return c.loadAll(ctx)
}
