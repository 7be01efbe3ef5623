// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bip-go/internal/model"
	"bip-go/internal/store"
)

func newArticleHandler(db *sql.DB) *ArticleHandler {
	return &ArticleHandler{db: db, queries: store.New(db)}
}

// createSingleNode inserts a display_mode=single menu item.
func createSingleNode(t *testing.T, db *sql.DB, title, slug string) store.MenuItem {
	t.Helper()

	now := time.Now()
	item, err := store.New(db).CreateMenuItem(context.Background(), store.CreateMenuItemParams{
		Title:       title,
		Slug:        slug,
		IsActive:    true,
		DisplayMode: model.DisplayModeSingle,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	return item
}

// createArticleOnNode inserts an article attached to a menu item.
func createArticleOnNode(t *testing.T, db *sql.DB, slug, status string, menuItemID int64) store.Article {
	t.Helper()

	now := time.Now()
	article, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title:      "Artykuł " + slug,
		Slug:       slug,
		Content:    "Treść artykułu.",
		Status:     status,
		MenuItemID: sql.NullInt64{Int64: menuItemID, Valid: true},
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	return article
}

func TestSingleModeConflictBlocksSecondArticle(t *testing.T) {
	db := testHandlerSetup(t)
	h := newArticleHandler(db)

	node := createSingleNode(t, db, "Statut", "statut")
	createArticleOnNode(t, db, "statut-gminy", model.ArticleStatusPublished, node.ID)

	target := sql.NullInt64{Int64: node.ID, Valid: true}
	conflict, err := h.singleModeConflict(context.Background(), target, nil)
	if err != nil {
		t.Fatalf("singleModeConflict: %v", err)
	}
	if !conflict {
		t.Error("second article on a single node should conflict")
	}
}

func TestSingleModeConflictAllowsOwnNode(t *testing.T) {
	db := testHandlerSetup(t)
	h := newArticleHandler(db)

	node := createSingleNode(t, db, "Statut", "statut")
	article := createArticleOnNode(t, db, "statut-gminy", model.ArticleStatusPublished, node.ID)

	// Re-saving the article that already occupies the node is fine.
	target := sql.NullInt64{Int64: node.ID, Valid: true}
	conflict, err := h.singleModeConflict(context.Background(), target, &article)
	if err != nil {
		t.Fatalf("singleModeConflict: %v", err)
	}
	if conflict {
		t.Error("article already on the node should not conflict with itself")
	}
}

func TestSingleModeConflictListNode(t *testing.T) {
	db := testHandlerSetup(t)
	h := newArticleHandler(db)

	node := createMenuItem(t, db, "Aktualności", "aktualnosci", sql.NullInt64{}, 0)
	createArticleOnNode(t, db, "pierwsza", model.ArticleStatusPublished, node.ID)

	target := sql.NullInt64{Int64: node.ID, Valid: true}
	conflict, err := h.singleModeConflict(context.Background(), target, nil)
	if err != nil {
		t.Fatalf("singleModeConflict: %v", err)
	}
	if conflict {
		t.Error("list nodes accept any number of articles")
	}
}

func TestSingleModeConflictIgnoresDeleted(t *testing.T) {
	db := testHandlerSetup(t)
	h := newArticleHandler(db)

	node := createSingleNode(t, db, "Statut", "statut")
	createArticleOnNode(t, db, "statut-stary", model.ArticleStatusDeleted, node.ID)

	target := sql.NullInt64{Int64: node.ID, Valid: true}
	conflict, err := h.singleModeConflict(context.Background(), target, nil)
	if err != nil {
		t.Fatalf("singleModeConflict: %v", err)
	}
	if conflict {
		t.Error("soft-deleted articles should not occupy a single node")
	}
}

func TestSingleModeConflictUnassigned(t *testing.T) {
	db := testHandlerSetup(t)
	h := newArticleHandler(db)

	conflict, err := h.singleModeConflict(context.Background(), sql.NullInt64{}, nil)
	if err != nil {
		t.Fatalf("singleModeConflict: %v", err)
	}
	if conflict {
		t.Error("detached articles never conflict")
	}
}
