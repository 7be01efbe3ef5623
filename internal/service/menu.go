// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bip-go/internal/cache"
	"bip-go/internal/model"
	"bip-go/internal/store"
)

// Service-level errors.
var (
	// ErrNotFound indicates a referenced menu item does not exist in the
	// addressed sibling group.
	ErrNotFound = errors.New("menu item not found")

	// ErrRaceDetected indicates the state read back after a toggle write
	// does not match the requested value.
	ErrRaceDetected = errors.New("menu item state mismatch after write")
)

// ConflictError indicates a delete was blocked by dependent rows.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// MenuNode is a top-level menu item with its ordered children.
// The hierarchy is exactly two levels deep.
type MenuNode struct {
	Item     model.MenuItem
	Children []model.MenuItem
}

// ToggleField selects which flag a toggle operation writes.
type ToggleField string

const (
	ToggleFieldActive  ToggleField = "active"
	ToggleFieldVisible ToggleField = "visible"
)

// ToggleState is the authoritative row state read back after a toggle.
type ToggleState struct {
	IsActive bool `json:"is_active"`
	Hidden   bool `json:"hidden"`
}

// MenuService provides menu tree loading and the admin mutations that
// operate on sibling groups.
type MenuService struct {
	db        *sql.DB
	queries   *store.Queries
	menuCache *cache.MenuCache
}

// NewMenuService creates a new MenuService.
// If menuCache is nil, a standalone service without caching is created.
func NewMenuService(db *sql.DB, menuCache *cache.MenuCache) *MenuService {
	return &MenuService{
		db:        db,
		queries:   store.New(db),
		menuCache: menuCache,
	}
}

// Tree returns the two-level menu tree ordered by sort_order then id.
// A load failure degrades to an empty tree so page rendering can
// continue without navigation.
func (s *MenuService) Tree(ctx context.Context) []MenuNode {
	items, err := s.loadItems(ctx)
	if err != nil {
		slog.Error("loading menu items", "error", err)
		return nil
	}
	return buildMenuTree(items)
}

// loadItems fetches the flat item list, via the cache when available.
func (s *MenuService) loadItems(ctx context.Context) ([]store.MenuItem, error) {
	if s.menuCache != nil {
		return s.menuCache.Items(ctx)
	}
	return s.queries.ListMenuItems(ctx)
}

// InvalidateCache clears the menu cache so the next load sees fresh data.
func (s *MenuService) InvalidateCache() {
	if s.menuCache != nil {
		s.menuCache.Invalidate()
	}
}

// buildMenuTree converts the flat, pre-ordered list into a two-level tree.
// Children whose parent is missing from the list are dropped.
func buildMenuTree(items []store.MenuItem) []MenuNode {
	var roots []MenuNode
	index := make(map[int64]int) // item ID -> position in roots

	for _, item := range items {
		if !item.ParentID.Valid {
			index[item.ID] = len(roots)
			roots = append(roots, MenuNode{Item: toModelItem(item)})
		}
	}

	for _, item := range items {
		if !item.ParentID.Valid {
			continue
		}
		pos, ok := index[item.ParentID.Int64]
		if !ok {
			continue
		}
		roots[pos].Children = append(roots[pos].Children, toModelItem(item))
	}

	return roots
}

func toModelItem(item store.MenuItem) model.MenuItem {
	return model.MenuItem{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		ParentID:    item.ParentID,
		SortOrder:   item.SortOrder,
		IsActive:    item.IsActive,
		Hidden:      item.Hidden,
		DisplayMode: item.DisplayMode,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// Reorder moves one item to the position of another within a single
// sibling group and rewrites sort_order for the whole group to
// zero-based indexes. The read-modify-write runs in one transaction so
// concurrent reorders cannot interleave partial rewrites.
func (s *MenuService) Reorder(ctx context.Context, movedID, targetID int64, parentID sql.NullInt64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	siblings, err := qtx.ListMenuItemsByParent(ctx, parentID)
	if err != nil {
		return fmt.Errorf("loading sibling group: %w", err)
	}

	movedIdx, targetIdx := -1, -1
	for i, item := range siblings {
		if item.ID == movedID {
			movedIdx = i
		}
		if item.ID == targetID {
			targetIdx = i
		}
	}
	if movedIdx < 0 || targetIdx < 0 {
		return ErrNotFound
	}

	// Splice: remove the moved item, reinsert at the target's index.
	moved := siblings[movedIdx]
	reordered := append([]store.MenuItem{}, siblings[:movedIdx]...)
	reordered = append(reordered, siblings[movedIdx+1:]...)

	insertAt := targetIdx
	if insertAt > len(reordered) {
		insertAt = len(reordered)
	}
	reordered = append(reordered[:insertAt], append([]store.MenuItem{moved}, reordered[insertAt:]...)...)

	now := time.Now()
	for i, item := range reordered {
		if err := qtx.UpdateMenuItemSortOrder(ctx, store.UpdateMenuItemSortOrderParams{
			SortOrder: int64(i),
			UpdatedAt: now,
			ID:        item.ID,
		}); err != nil {
			return fmt.Errorf("rewriting sort order for item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}

	s.InvalidateCache()
	return nil
}

// Toggle writes one visibility flag and returns the authoritative state
// read back after the write. field "active" writes is_active directly;
// field "visible" writes hidden as its logical inverse. A mismatch
// between requested and read-back state is reported as ErrRaceDetected.
func (s *MenuService) Toggle(ctx context.Context, id int64, field ToggleField, value bool) (ToggleState, error) {
	if _, err := s.queries.GetMenuItemByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ToggleState{}, ErrNotFound
		}
		return ToggleState{}, fmt.Errorf("loading menu item: %w", err)
	}

	now := time.Now()
	switch field {
	case ToggleFieldActive:
		if err := s.queries.UpdateMenuItemActive(ctx, store.UpdateMenuItemActiveParams{
			IsActive:  value,
			UpdatedAt: now,
			ID:        id,
		}); err != nil {
			return ToggleState{}, fmt.Errorf("updating is_active: %w", err)
		}
	case ToggleFieldVisible:
		if err := s.queries.UpdateMenuItemHidden(ctx, store.UpdateMenuItemHiddenParams{
			Hidden:    !value,
			UpdatedAt: now,
			ID:        id,
		}); err != nil {
			return ToggleState{}, fmt.Errorf("updating hidden: %w", err)
		}
	default:
		return ToggleState{}, fmt.Errorf("unknown toggle field %q", field)
	}

	// Read back the fresh row state rather than echoing the request.
	item, err := s.queries.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ToggleState{}, ErrNotFound
		}
		return ToggleState{}, fmt.Errorf("re-reading menu item: %w", err)
	}

	state := ToggleState{IsActive: item.IsActive, Hidden: item.Hidden}

	mismatch := (field == ToggleFieldActive && state.IsActive != value) ||
		(field == ToggleFieldVisible && state.Hidden == value)
	if mismatch {
		return state, ErrRaceDetected
	}

	s.InvalidateCache()
	return state, nil
}

// Delete removes a menu item. The delete is refused while the item
// still has children or non-deleted articles assigned to it.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	if _, err := s.queries.GetMenuItemByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("loading menu item: %w", err)
	}

	children, err := s.queries.CountMenuItemChildren(ctx, sql.NullInt64{Int64: id, Valid: true})
	if err != nil {
		return fmt.Errorf("counting children: %w", err)
	}
	if children > 0 {
		return &ConflictError{Reason: fmt.Sprintf("menu item has %d child items", children)}
	}

	articles, err := s.queries.CountMenuItemArticles(ctx, sql.NullInt64{Int64: id, Valid: true})
	if err != nil {
		return fmt.Errorf("counting articles: %w", err)
	}
	if articles > 0 {
		return &ConflictError{Reason: fmt.Sprintf("menu item has %d assigned articles", articles)}
	}

	if err := s.queries.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	s.InvalidateCache()
	return nil
}
