// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bip-go/internal/model"
	"bip-go/internal/store"
)

func recordViewRequest(articleID int64, ip, userAgent string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/article/%d/view", articleID), nil)
	req.Header.Set("X-Real-IP", ip)
	req.Header.Set("User-Agent", userAgent)
	return requestWithURLParams(req, map[string]string{"id": fmt.Sprint(articleID)})
}

func TestRecordViewCountsOnce(t *testing.T) {
	db := testHandlerSetup(t)
	h := NewAPIHandler(db)

	article := createArticle(t, db, "ogloszenie", model.ArticleStatusPublished)

	rec := httptest.NewRecorder()
	h.RecordView(rec, recordViewRequest(article.ID, "10.0.0.1", "Mozilla/5.0"))
	assertStatus(t, rec.Code, http.StatusOK)

	body := decodeJSONBody(t, rec)
	if body["counted"] != true {
		t.Errorf("first view counted = %v, want true", body["counted"])
	}

	// Same client again within the dedup window.
	rec = httptest.NewRecorder()
	h.RecordView(rec, recordViewRequest(article.ID, "10.0.0.1", "Mozilla/5.0"))
	assertStatus(t, rec.Code, http.StatusOK)

	body = decodeJSONBody(t, rec)
	if body["counted"] != false {
		t.Errorf("repeat view counted = %v, want false", body["counted"])
	}

	updated, err := store.New(db).GetArticleByID(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("GetArticleByID: %v", err)
	}
	if updated.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", updated.ViewCount)
	}
}

func TestRecordViewDistinctClients(t *testing.T) {
	db := testHandlerSetup(t)
	h := NewAPIHandler(db)

	article := createArticle(t, db, "przetarg", model.ArticleStatusPublished)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		rec := httptest.NewRecorder()
		h.RecordView(rec, recordViewRequest(article.ID, ip, "Mozilla/5.0"))
		assertStatus(t, rec.Code, http.StatusOK)
	}

	updated, err := store.New(db).GetArticleByID(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("GetArticleByID: %v", err)
	}
	if updated.ViewCount != 3 {
		t.Errorf("view_count = %d, want 3", updated.ViewCount)
	}
}

func TestRecordViewDraftNotFound(t *testing.T) {
	db := testHandlerSetup(t)
	h := NewAPIHandler(db)

	article := createArticle(t, db, "szkic", model.ArticleStatusDraft)

	rec := httptest.NewRecorder()
	h.RecordView(rec, recordViewRequest(article.ID, "10.0.0.1", "Mozilla/5.0"))
	assertStatus(t, rec.Code, http.StatusNotFound)
}

func TestRecordViewMissingArticle(t *testing.T) {
	db := testHandlerSetup(t)
	h := NewAPIHandler(db)

	rec := httptest.NewRecorder()
	h.RecordView(rec, recordViewRequest(12345, "10.0.0.1", "Mozilla/5.0"))
	assertStatus(t, rec.Code, http.StatusNotFound)
}

func TestRecordViewInvalidID(t *testing.T) {
	db := testHandlerSetup(t)
	h := NewAPIHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/article/abc/view", nil)
	req = requestWithURLParams(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	h.RecordView(rec, req)
	assertStatus(t, rec.Code, http.StatusBadRequest)
}
