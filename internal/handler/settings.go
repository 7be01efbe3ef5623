// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/store"
)

// SettingsHandler handles the site settings routes. Admin-only.
type SettingsHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	cacheManager *cache.Manager
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(db *sql.DB, renderer *render.Renderer, cm *cache.Manager) *SettingsHandler {
	return &SettingsHandler{
		queries:      store.New(db),
		renderer:     renderer,
		cacheManager: cm,
	}
}

// List renders the settings form.
// GET /admin/settings
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.ListSettings(r.Context())
	if err != nil {
		logAndInternalError(w, "listing settings", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/settings", render.TemplateData{
		Title:     "Ustawienia",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      map[string]any{"Settings": settings},
	}); err != nil {
		logAndInternalError(w, "rendering settings", "error", err)
	}
}

// Update saves all submitted settings. Each existing setting row is
// upserted from its form field; unknown form fields are ignored.
// POST /admin/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	settings, err := h.queries.ListSettings(r.Context())
	if err != nil {
		logAndInternalError(w, "listing settings", "error", err)
		return
	}

	userID := middleware.GetUserID(r)
	editor := sql.NullInt64{Int64: userID, Valid: userID > 0}
	now := time.Now()

	for _, s := range settings {
		var value string
		switch s.Type {
		case model.SettingTypeBool:
			// Unchecked checkboxes are absent from the form body.
			if r.FormValue(s.Key) != "" {
				value = "true"
			} else {
				value = "false"
			}
		default:
			if !r.Form.Has(s.Key) {
				continue
			}
			value = strings.TrimSpace(r.FormValue(s.Key))
		}

		if value == s.Value {
			continue
		}

		if _, err := h.queries.UpsertSetting(r.Context(), store.UpsertSettingParams{
			Key:       s.Key,
			Value:     value,
			Type:      s.Type,
			UpdatedBy: editor,
			UpdatedAt: now,
		}); err != nil {
			slog.Error("saving setting", "error", err, "key", s.Key)
			flashError(w, r, h.renderer, redirectAdminSettings, "Nie można zapisać ustawienia: "+s.Key)
			return
		}
	}

	if h.cacheManager != nil {
		h.cacheManager.InvalidateSettings(r.Context())
	}

	slog.Info("settings updated", "category", model.EventCategoryConfig, "user_id", userID)
	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Ustawienia zapisane")
}
