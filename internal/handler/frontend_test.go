// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/store"
)

func TestPageCacheKey(t *testing.T) {
	db := testHandlerSetup(t)

	pages := cache.NewCache(cache.DefaultConfig())
	cm := cache.NewManager(store.New(db), pages, time.Minute)
	defer cm.Stop()

	h := &FrontendHandler{cacheManager: cm}

	req := httptest.NewRequest(http.MethodGet, "/urzad/kierownictwo?kategoria=uchwaly", nil)
	if got, want := h.pageCacheKey(req), "page:/urzad/kierownictwo?kategoria=uchwaly"; got != want {
		t.Errorf("pageCacheKey = %q, want %q", got, want)
	}

	// Non-GET requests are never cached.
	post := httptest.NewRequest(http.MethodPost, "/urzad", nil)
	if got := h.pageCacheKey(post); got != "" {
		t.Errorf("pageCacheKey for POST = %q, want empty", got)
	}

	// Logged-in requests bypass the page cache.
	authed := httptest.NewRequest(http.MethodGet, "/urzad", nil)
	authed = authed.WithContext(context.WithValue(authed.Context(),
		middleware.ContextKeyUser, store.User{ID: 1, Role: "editor"}))
	if got := h.pageCacheKey(authed); got != "" {
		t.Errorf("pageCacheKey for logged-in user = %q, want empty", got)
	}
}

func TestPageCacheKeyWithoutManager(t *testing.T) {
	h := &FrontendHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := h.pageCacheKey(req); got != "" {
		t.Errorf("pageCacheKey without cache manager = %q, want empty", got)
	}
}

func TestSettingOrFallback(t *testing.T) {
	db := testHandlerSetup(t)

	pages := cache.NewCache(cache.DefaultConfig())
	cm := cache.NewManager(store.New(db), pages, time.Minute)
	defer cm.Stop()

	h := &FrontendHandler{cacheManager: cm}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := h.settingOr(req, "nonexistent_key", "domyślna"); got != "domyślna" {
		t.Errorf("settingOr = %q, want fallback", got)
	}
}
