// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/store"
)

// DashboardHandler renders the admin landing page.
type DashboardHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	cacheManager *cache.Manager
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *sql.DB, renderer *render.Renderer, cm *cache.Manager) *DashboardHandler {
	return &DashboardHandler{
		queries:      store.New(db),
		renderer:     renderer,
		cacheManager: cm,
	}
}

// Show renders the dashboard with entity counts and recent events.
// GET /admin
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	menuCount, err := h.queries.CountMenuItems(ctx)
	if err != nil {
		slog.Error("counting menu items", "error", err)
	}
	articleCount, err := h.queries.CountArticles(ctx)
	if err != nil {
		slog.Error("counting articles", "error", err)
	}
	userCount, err := h.queries.CountUsers(ctx)
	if err != nil {
		slog.Error("counting users", "error", err)
	}
	eventCount, err := h.queries.CountEvents(ctx)
	if err != nil {
		slog.Error("counting events", "error", err)
	}

	recent, err := h.queries.ListEvents(ctx, store.ListEventsParams{Limit: 10, Offset: 0})
	if err != nil {
		slog.Error("listing recent events", "error", err)
	}

	var cacheStats []cache.CacheStats
	var cacheTotal cache.Stats
	if h.cacheManager != nil {
		cacheStats = h.cacheManager.AllStats()
		cacheTotal = h.cacheManager.TotalStats()
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title:     "Panel administracyjny",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data: map[string]any{
			"MenuCount":    menuCount,
			"ArticleCount": articleCount,
			"UserCount":    userCount,
			"EventCount":   eventCount,
			"RecentEvents": recent,
			"CacheStats":   cacheStats,
			"CacheTotal":   cacheTotal,
		},
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}

// ClearCache drops every cache and resets its statistics.
// POST /admin/cache/clear
func (h *DashboardHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if h.cacheManager != nil {
		h.cacheManager.ClearAll(r.Context())
	}

	slog.Info("caches cleared", "category", model.EventCategoryCache,
		"user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdmin, "Pamięć podręczna wyczyszczona")
}
