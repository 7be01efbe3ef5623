package cache

import (
	"context"
	"log/slog"
	"time"

	"bip-go/internal/store"
)

// CacheType identifies a specific cache.
type CacheType string

// Cache types.
const (
	CacheTypeSettings CacheType = "settings"
	CacheTypeMenu     CacheType = "menu"
	CacheTypePages    CacheType = "pages"
)

// CacheStats holds statistics for a specific cache.
type CacheStats struct {
	Name  string
	Type  CacheType
	Stats Stats
}

// Manager manages all cache instances and provides a unified interface.
type Manager struct {
	Settings *SettingsCache
	Menu     *MenuCache
	// Pages caches rendered public pages, backed by memory or Redis
	// depending on configuration.
	Pages Cacher
}

// NewManager creates a new cache manager.
// The pages backend comes from the factory so it can be Redis-backed;
// menu and settings caches are always process-local.
func NewManager(queries *store.Queries, pages Cacher, menuTTL time.Duration) *Manager {
	return &Manager{
		Settings: NewSettingsCache(queries),
		Menu:     NewMenuCache(queries, menuTTL),
		Pages:    pages,
	}
}

// Stop releases cache resources.
func (m *Manager) Stop() {
	if err := m.Pages.Close(); err != nil {
		slog.Warn("closing pages cache", "error", err)
	}
}

// ClearAll clears all caches and resets statistics.
func (m *Manager) ClearAll(ctx context.Context) {
	m.Settings.Invalidate()
	m.Menu.Invalidate()
	if err := m.Pages.Clear(ctx); err != nil {
		slog.Warn("clearing pages cache", "error", err)
	}

	// Reset statistics for all caches
	m.Settings.ResetStats()
	m.Menu.ResetStats()
	if sp, ok := m.Pages.(StatsProvider); ok {
		sp.ResetStats()
	}

	slog.Info("caches cleared")
}

// InvalidateMenu invalidates the menu cache and cached pages.
// Call this after any menu mutation so navigation reflects the change.
func (m *Manager) InvalidateMenu(ctx context.Context) {
	m.Menu.Invalidate()
	if err := m.Pages.Clear(ctx); err != nil {
		slog.Warn("clearing pages cache", "error", err)
	}
}

// InvalidateSettings invalidates the settings cache and cached pages.
func (m *Manager) InvalidateSettings(ctx context.Context) {
	m.Settings.Invalidate()
	if err := m.Pages.Clear(ctx); err != nil {
		slog.Warn("clearing pages cache", "error", err)
	}
}

// InvalidateContent clears cached pages.
// Call this when articles are created, updated, or deleted.
func (m *Manager) InvalidateContent(ctx context.Context) {
	if err := m.Pages.Clear(ctx); err != nil {
		slog.Warn("clearing pages cache", "error", err)
	}
}

// AllStats returns statistics for all caches.
func (m *Manager) AllStats() []CacheStats {
	stats := []CacheStats{
		{
			Name:  "Site Settings",
			Type:  CacheTypeSettings,
			Stats: m.Settings.Stats(),
		},
		{
			Name:  "Navigation Menu",
			Type:  CacheTypeMenu,
			Stats: m.Menu.Stats(),
		},
	}

	if sp, ok := m.Pages.(StatsProvider); ok {
		stats = append(stats, CacheStats{
			Name:  "Rendered Pages",
			Type:  CacheTypePages,
			Stats: sp.Stats(),
		})
	}

	return stats
}

// TotalStats returns aggregated statistics across all caches.
func (m *Manager) TotalStats() Stats {
	var total Stats
	for _, cs := range m.AllStats() {
		total.Hits += cs.Stats.Hits
		total.Misses += cs.Stats.Misses
		total.Sets += cs.Stats.Sets
		total.Items += cs.Stats.Items
		if cs.Stats.ResetAt != nil {
			total.ResetAt = cs.Stats.ResetAt
		}
	}

	totalRequests := total.Hits + total.Misses
	if totalRequests > 0 {
		total.HitRate = float64(total.Hits) / float64(totalRequests) * 100
	}

	return total
}

// Preload warms up the settings and menu caches.
func (m *Manager) Preload(ctx context.Context) error {
	if err := m.Settings.Preload(ctx); err != nil {
		return err
	}
	return m.Menu.Preload(ctx)
}

// GetSetting is a convenience method to get a setting value.
func (m *Manager) GetSetting(ctx context.Context, key string) (string, error) {
	return m.Settings.Get(ctx, key)
}
