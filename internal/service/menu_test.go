// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"bip-go/internal/model"
	"bip-go/internal/store"
	"bip-go/internal/testutil"
)

func createItem(t *testing.T, q *store.Queries, title, slug string, parentID sql.NullInt64, sortOrder int64) store.MenuItem {
	t.Helper()
	now := time.Now()
	item, err := q.CreateMenuItem(context.Background(), store.CreateMenuItemParams{
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
		t.Fatalf("CreateMenuItem(%s): %v", slug, err)
	}
	return item
}

func TestMenuServiceTree(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	parent := createItem(t, q, "Urząd", "urzad", sql.NullInt64{}, 0)
	createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 1)
	pid := sql.NullInt64{Int64: parent.ID, Valid: true}
	createItem(t, q, "Kierownictwo", "kierownictwo", pid, 1)
	createItem(t, q, "Dane podstawowe", "dane-podstawowe", pid, 0)

	svc := NewMenuService(db, nil)
	tree := svc.Tree(ctx)

	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].Item.Slug != "urzad" || tree[1].Item.Slug != "kontakt" {
		t.Errorf("top-level order = %q, %q", tree[0].Item.Slug, tree[1].Item.Slug)
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(tree[0].Children))
	}
	// Children follow sort_order, not insertion order.
	if tree[0].Children[0].Slug != "dane-podstawowe" || tree[0].Children[1].Slug != "kierownictwo" {
		t.Errorf("child order = %q, %q", tree[0].Children[0].Slug, tree[0].Children[1].Slug)
	}
}

func TestMenuServiceTreeDropsOrphans(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 0)
	// Parent ID 999 does not exist in the loaded list.
	createItem(t, q, "Sierota", "sierota", sql.NullInt64{Int64: 999, Valid: true}, 0)

	svc := NewMenuService(db, nil)
	tree := svc.Tree(ctx)

	if len(tree) != 1 {
		t.Fatalf("len(tree) = %d, want 1", len(tree))
	}
	if len(tree[0].Children) != 0 {
		t.Errorf("orphan attached to %q", tree[0].Item.Slug)
	}
}

func TestMenuServiceReorder(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	a := createItem(t, q, "A", "a", sql.NullInt64{}, 0)
	b := createItem(t, q, "B", "b", sql.NullInt64{}, 1)
	c := createItem(t, q, "C", "c", sql.NullInt64{}, 2)

	svc := NewMenuService(db, nil)
	if err := svc.Reorder(ctx, c.ID, a.ID, sql.NullInt64{}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	siblings, err := q.ListMenuItemsByParent(ctx, sql.NullInt64{})
	if err != nil {
		t.Fatalf("ListMenuItemsByParent: %v", err)
	}
	wantIDs := []int64{c.ID, a.ID, b.ID}
	if len(siblings) != len(wantIDs) {
		t.Fatalf("len(siblings) = %d, want %d", len(siblings), len(wantIDs))
	}
	for i, item := range siblings {
		if item.ID != wantIDs[i] {
			t.Errorf("position %d: ID = %d, want %d", i, item.ID, wantIDs[i])
		}
		if item.SortOrder != int64(i) {
			t.Errorf("position %d: SortOrder = %d, want %d", i, item.SortOrder, i)
		}
	}
}

func TestMenuServiceReorderScopedToSiblingGroup(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	parent := createItem(t, q, "Urząd", "urzad", sql.NullInt64{}, 0)
	top := createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 1)
	pid := sql.NullInt64{Int64: parent.ID, Valid: true}
	child := createItem(t, q, "Kierownictwo", "kierownictwo", pid, 0)

	svc := NewMenuService(db, nil)
	// Moved and target live in different groups: neither is fully present
	// in the addressed group, so the reorder is rejected.
	if err := svc.Reorder(ctx, child.ID, top.ID, sql.NullInt64{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reorder across groups: err = %v, want ErrNotFound", err)
	}
}

func TestMenuServiceReorderUnknownID(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	a := createItem(t, q, "A", "a", sql.NullInt64{}, 0)

	svc := NewMenuService(db, nil)
	if err := svc.Reorder(ctx, a.ID, 999, sql.NullInt64{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// The failed reorder leaves sort orders untouched.
	got, err := q.GetMenuItemByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetMenuItemByID: %v", err)
	}
	if got.SortOrder != 0 {
		t.Errorf("SortOrder = %d, want 0", got.SortOrder)
	}
}

func TestMenuServiceToggleActive(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	item := createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 0)

	svc := NewMenuService(db, nil)
	state, err := svc.Toggle(ctx, item.ID, ToggleFieldActive, false)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if state.IsActive {
		t.Errorf("IsActive = true, want false")
	}
}

func TestMenuServiceToggleVisibleInverts(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	item := createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 0)

	svc := NewMenuService(db, nil)
	// visible=false stores hidden=true.
	state, err := svc.Toggle(ctx, item.ID, ToggleFieldVisible, false)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !state.Hidden {
		t.Errorf("Hidden = false, want true")
	}

	// Repeating the same request is a no-op and still succeeds.
	state, err = svc.Toggle(ctx, item.ID, ToggleFieldVisible, false)
	if err != nil {
		t.Fatalf("repeated Toggle: %v", err)
	}
	if !state.Hidden {
		t.Errorf("Hidden = false after repeat, want true")
	}
}

func TestMenuServiceToggleUnknownItem(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewMenuService(db, nil)
	if _, err := svc.Toggle(context.Background(), 999, ToggleFieldActive, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMenuServiceToggleUnknownField(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	item := createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 0)

	svc := NewMenuService(db, nil)
	if _, err := svc.Toggle(ctx, item.ID, ToggleField("bogus"), true); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestMenuServiceDeleteGuards(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	parent := createItem(t, q, "Urząd", "urzad", sql.NullInt64{}, 0)
	pid := sql.NullInt64{Int64: parent.ID, Valid: true}
	child := createItem(t, q, "Kierownictwo", "kierownictwo", pid, 0)

	svc := NewMenuService(db, nil)

	var conflict *ConflictError
	if err := svc.Delete(ctx, parent.ID); !errors.As(err, &conflict) {
		t.Fatalf("Delete(parent with child): err = %v, want ConflictError", err)
	}
	if _, err := q.GetMenuItemByID(ctx, parent.ID); err != nil {
		t.Errorf("parent removed despite conflict: %v", err)
	}

	now := time.Now()
	if _, err := q.CreateArticle(ctx, store.CreateArticleParams{
		Title:      "Uchwała I/2026",
		Slug:       "uchwala-i-2026",
		Content:    "treść",
		Status:     model.ArticleStatusPublished,
		MenuItemID: sql.NullInt64{Int64: child.ID, Valid: true},
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if err := svc.Delete(ctx, child.ID); !errors.As(err, &conflict) {
		t.Fatalf("Delete(item with article): err = %v, want ConflictError", err)
	}
}

func TestMenuServiceDeleteLeaf(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	q := store.New(db)
	item := createItem(t, q, "Kontakt", "kontakt", sql.NullInt64{}, 0)

	svc := NewMenuService(db, nil)
	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := q.GetMenuItemByID(ctx, item.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}

	if err := svc.Delete(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}
