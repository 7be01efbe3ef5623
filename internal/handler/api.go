// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"bip-go/internal/model"
	"bip-go/internal/store"
)

// viewDedupWindow is how long a repeat view from the same client does
// not count again.
const viewDedupWindow = 24 * time.Hour

// APIHandler serves the small public JSON API.
type APIHandler struct {
	queries *store.Queries
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(db *sql.DB) *APIHandler {
	return &APIHandler{queries: store.New(db)}
}

// RecordView counts one article view. Repeat views from the same
// anonymized client within the dedup window are ignored. Only the
// fingerprint hash is stored, never the IP or user agent.
// POST /api/article/{id}/view
func (h *APIHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := h.queries.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "article not found")
		} else {
			slog.Error("loading article for view count", "error", err, "article_id", id)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}
	if article.Status != model.ArticleStatusPublished {
		writeJSONError(w, http.StatusNotFound, "article not found")
		return
	}

	hash := viewerHash(r)
	now := time.Now()

	seen, err := h.queries.CountArticleViews(r.Context(), store.CountArticleViewsParams{
		ArticleID:  id,
		ClientHash: hash,
		ViewedAt:   now.Add(-viewDedupWindow),
	})
	if err != nil {
		slog.Error("checking recent views", "error", err, "article_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if seen > 0 {
		writeJSONSuccess(w, map[string]any{"counted": false})
		return
	}

	if err := h.queries.CreateArticleView(r.Context(), store.CreateArticleViewParams{
		ArticleID:  id,
		ClientHash: hash,
		ViewedAt:   now,
	}); err != nil {
		slog.Error("recording view", "error", err, "article_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if err := h.queries.IncrementArticleViewCount(r.Context(), id); err != nil {
		slog.Error("incrementing view count", "error", err, "article_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSONSuccess(w, map[string]any{"counted": true})
}
