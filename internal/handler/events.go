// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strconv"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/render"
	"bip-go/internal/store"
)

const eventListPageSize = 100

// EventsHandler renders the system event log. Admin-only.
type EventsHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	cacheManager *cache.Manager
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(db *sql.DB, renderer *render.Renderer, cm *cache.Manager) *EventsHandler {
	return &EventsHandler{
		queries:      store.New(db),
		renderer:     renderer,
		cacheManager: cm,
	}
}

// List renders a page of the event log, newest first.
// GET /admin/events
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Limit:  eventListPageSize,
		Offset: (page - 1) * eventListPageSize,
	})
	if err != nil {
		logAndInternalError(w, "listing events", "error", err)
		return
	}

	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		logAndInternalError(w, "counting events", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/events", render.TemplateData{
		Title:     "Dziennik zdarzeń",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data: map[string]any{
			"Events":     events,
			"Page":       page,
			"TotalPages": (total + eventListPageSize - 1) / eventListPageSize,
		},
	}); err != nil {
		logAndInternalError(w, "rendering event log", "error", err)
	}
}
