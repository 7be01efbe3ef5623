// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bip-go/internal/cache"
	"bip-go/internal/model"
	"bip-go/internal/service"
	"bip-go/internal/store"
	"bip-go/internal/testutil"
)

// testHandlerSetup creates a migrated test database.
func testHandlerSetup(t *testing.T) *sql.DB {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	return db
}

// newTestMenuService builds a menu service with a short-lived cache.
func newTestMenuService(db *sql.DB) *service.MenuService {
	menuCache := cache.NewMenuCache(store.New(db), time.Minute)
	return service.NewMenuService(db, menuCache)
}

// createMenuItem inserts one menu item for tests.
func createMenuItem(t *testing.T, db *sql.DB, title, slug string, parentID sql.NullInt64, sortOrder int64) store.MenuItem {
	t.Helper()

	now := time.Now()
	item, err := store.New(db).CreateMenuItem(context.Background(), store.CreateMenuItemParams{
		Title:       title,
		Slug:        slug,
		ParentID:    parentID,
		SortOrder:   sortOrder,
		IsActive:    true,
		DisplayMode: model.DisplayModeList,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	return item
}

// createArticle inserts one article for tests.
func createArticle(t *testing.T, db *sql.DB, slug, status string) store.Article {
	t.Helper()

	now := time.Now()
	article, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title:     "Artykuł " + slug,
		Slug:      slug,
		Content:   "Treść artykułu.",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	return article
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeJSONBody decodes a recorded JSON response body.
func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

// assertStatus checks the recorded status code.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d, want %d", got, want)
	}
}
