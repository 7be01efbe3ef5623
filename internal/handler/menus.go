// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/service"
	"bip-go/internal/store"
	"bip-go/internal/util"
)

// MenuHandler handles the menu administration routes.
type MenuHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	menuService  *service.MenuService
	cacheManager *cache.Manager
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(db *sql.DB, renderer *render.Renderer, menuService *service.MenuService, cm *cache.Manager) *MenuHandler {
	return &MenuHandler{
		queries:      store.New(db),
		renderer:     renderer,
		menuService:  menuService,
		cacheManager: cm,
	}
}

// invalidate drops cached menu data and rendered pages after a mutation.
func (h *MenuHandler) invalidate(r *http.Request) {
	h.menuService.InvalidateCache()
	if h.cacheManager != nil {
		h.cacheManager.InvalidateMenu(r.Context())
	}
}

// List renders the menu tree overview.
// GET /admin/menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	tree := h.menuService.Tree(r.Context())

	if err := h.renderer.Render(w, r, "admin/menus", render.TemplateData{
		Title:     "Menu",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      map[string]any{"Tree": tree},
	}); err != nil {
		logAndInternalError(w, "rendering menu list", "error", err)
	}
}

// NewForm renders the form for a new menu item.
// GET /admin/menu/new
func (h *MenuHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// EditForm renders the form for an existing menu item.
// GET /admin/menu/{id}
func (h *MenuHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMenu, "Nieprawidłowy identyfikator")
		return
	}

	item, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenu, "pozycja menu", id,
		func(id int64) (store.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &item)
}

func (h *MenuHandler) renderForm(w http.ResponseWriter, r *http.Request, item *store.MenuItem) {
	tree := h.menuService.Tree(r.Context())

	// A parent candidate is any top-level item other than the edited one.
	parents := make([]service.MenuNode, 0, len(tree))
	for _, node := range tree {
		if item != nil && node.Item.ID == item.ID {
			continue
		}
		parents = append(parents, node)
	}

	data := map[string]any{"Parents": parents}
	if item != nil {
		data["Item"] = item
	}

	if err := h.renderer.Render(w, r, "admin/menu_form", render.TemplateData{
		Title:     "Menu",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      data,
	}); err != nil {
		logAndInternalError(w, "rendering menu form", "error", err)
	}
}

// menuFormValues reads the shared form fields for create and update.
func menuFormValues(r *http.Request) (title, slug, displayMode string, parentID sql.NullInt64, isActive, hidden bool) {
	title = strings.TrimSpace(r.FormValue("title"))
	slug = slugOrGenerate(r.FormValue("slug"), title)

	parentID = util.ParseNullInt64(r.FormValue("parent_id"))

	displayMode = r.FormValue("display_mode")
	if displayMode != model.DisplayModeSingle {
		displayMode = model.DisplayModeList
	}

	isActive = r.FormValue("is_active") != ""
	hidden = r.FormValue("hidden") != ""
	return
}

var (
	errParentMissing = errors.New("parent menu item not found")
	errParentNested  = errors.New("parent menu item is not top-level")
)

// checkParent verifies that parentID points at an existing top-level item.
// The tree is two levels deep, so a child can never itself be a parent;
// accepting one would silently drop the grandchild from navigation.
func (h *MenuHandler) checkParent(ctx context.Context, parentID sql.NullInt64) error {
	if !parentID.Valid {
		return nil
	}
	parent, err := h.queries.GetMenuItemByID(ctx, parentID.Int64)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errParentMissing
		}
		return err
	}
	if parent.ParentID.Valid {
		return errParentNested
	}
	return nil
}

const (
	msgParentMissing = "Wybrana pozycja nadrzędna nie istnieje"
	msgParentNested  = "Pozycją nadrzędną może być tylko pozycja najwyższego poziomu"
)

// Create handles the new menu item submission.
// POST /admin/menu
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMenuNew) {
		return
	}

	title, slug, displayMode, parentID, isActive, hidden := menuFormValues(r)
	if title == "" {
		flashError(w, r, h.renderer, redirectAdminMenuNew, "Tytuł jest wymagany")
		return
	}

	switch err := h.checkParent(r.Context(), parentID); {
	case errors.Is(err, errParentMissing):
		flashError(w, r, h.renderer, redirectAdminMenuNew, msgParentMissing)
		return
	case errors.Is(err, errParentNested):
		flashError(w, r, h.renderer, redirectAdminMenuNew, msgParentNested)
		return
	case err != nil:
		logAndInternalError(w, "checking parent item", "error", err)
		return
	}

	// New items go to the end of their sibling group.
	siblings, err := h.queries.ListMenuItemsByParent(r.Context(), parentID)
	if err != nil {
		logAndInternalError(w, "loading sibling group", "error", err)
		return
	}

	now := time.Now()
	item, err := h.queries.CreateMenuItem(r.Context(), store.CreateMenuItemParams{
		Title:       title,
		Slug:        slug,
		ParentID:    parentID,
		SortOrder:   int64(len(siblings)),
		IsActive:    isActive,
		Hidden:      hidden,
		DisplayMode: displayMode,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating menu item", "error", err, "slug", slug)
		flashError(w, r, h.renderer, redirectAdminMenuNew, "Nie można utworzyć pozycji. Slug musi być unikalny w obrębie grupy.")
		return
	}

	h.invalidate(r)
	slog.Info("menu item created", "category", model.EventCategoryMenu,
		"menu_item_id", item.ID, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminMenu, "Pozycja menu utworzona")
}

// Update handles the edit form submission.
// POST /admin/menu/{id}
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMenu, "Nieprawidłowy identyfikator")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMenu) {
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenu, "pozycja menu", id,
		func(id int64) (store.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) }); !ok {
		return
	}

	title, slug, displayMode, parentID, isActive, hidden := menuFormValues(r)
	if title == "" {
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMenuID, id), "Tytuł jest wymagany")
		return
	}

	// An item with children cannot itself become a child, and the chosen
	// parent must exist at the top level.
	if parentID.Valid {
		if parentID.Int64 == id {
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMenuID, id),
				"Pozycja nie może być nadrzędna wobec samej siebie")
			return
		}
		children, err := h.queries.CountMenuItemChildren(r.Context(), util.NullInt64FromValue(id))
		if err != nil {
			logAndInternalError(w, "counting children", "error", err)
			return
		}
		if children > 0 {
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMenuID, id),
				"Pozycja z podpozycjami nie może zostać przeniesiona na niższy poziom")
			return
		}
		switch err := h.checkParent(r.Context(), parentID); {
		case errors.Is(err, errParentMissing):
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMenuID, id), msgParentMissing)
			return
		case errors.Is(err, errParentNested):
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMenuID, id), msgParentNested)
			return
		case err != nil:
			logAndInternalError(w, "checking parent item", "error", err)
			return
		}
	}

	if _, err := h.queries.UpdateMenuItem(r.Context(), store.UpdateMenuItemParams{
		Title:       title,
		Slug:        slug,
		ParentID:    parentID,
		IsActive:    isActive,
		Hidden:      hidden,
		DisplayMode: displayMode,
		UpdatedAt:   time.Now(),
		ID:          id,
	}); err != nil {
		slog.Error("updating menu item", "error", err, "menu_item_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMenuID, id), "Nie można zapisać pozycji")
		return
	}

	h.invalidate(r)
	slog.Info("menu item updated", "category", model.EventCategoryMenu,
		"menu_item_id", id, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminMenu, "Pozycja menu zapisana")
}

// Delete removes a menu item unless it still has children or articles.
// POST /admin/menu/{id}/delete
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMenu, "Nieprawidłowy identyfikator")
		return
	}

	err = h.menuService.Delete(r.Context(), id)
	var conflict *service.ConflictError
	switch {
	case errors.Is(err, service.ErrNotFound):
		flashError(w, r, h.renderer, redirectAdminMenu, "Nie znaleziono pozycji menu")
	case errors.As(err, &conflict):
		flashError(w, r, h.renderer, redirectAdminMenu,
			"Nie można usunąć pozycji: najpierw usuń podpozycje i artykuły")
	case err != nil:
		logAndInternalError(w, "deleting menu item", "error", err, "menu_item_id", id)
	default:
		h.invalidate(r)
		slog.Info("menu item deleted", "category", model.EventCategoryMenu,
			"menu_item_id", id, "user_id", middleware.GetUserID(r))
		flashSuccess(w, r, h.renderer, redirectAdminMenu, "Pozycja menu usunięta")
	}
}

// menuItemJSON is the wire shape of one menu item in the JSON API.
type menuItemJSON struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	ParentID    *int64 `json:"parent_id"`
	SortOrder   int64  `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
	Hidden      bool   `json:"hidden"`
	DisplayMode string `json:"display_mode"`
}

func toMenuItemJSON(item store.MenuItem) menuItemJSON {
	out := menuItemJSON{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		SortOrder:   item.SortOrder,
		IsActive:    item.IsActive,
		Hidden:      item.Hidden,
		DisplayMode: item.DisplayMode,
	}
	if item.ParentID.Valid {
		id := item.ParentID.Int64
		out.ParentID = &id
	}
	return out
}

// Show returns one menu item as JSON.
// GET /admin/api/menu/{id}
func (h *MenuHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}

	item, ok := requireEntityWithJSONError(w, "menu item", id,
		func(id int64) (store.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}

	writeJSONSuccess(w, map[string]any{"item": toMenuItemJSON(item)})
}

// updateItemRequest is the JSON body of a menu item update.
type updateItemRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	ParentID    *int64 `json:"parent_id"`
	DisplayMode string `json:"display_mode"`
	IsActive    bool   `json:"is_active"`
	Hidden      bool   `json:"hidden"`
}

// Put updates a menu item via the JSON API.
// PUT /admin/api/menu/{id}
func (h *MenuHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := requireEntityWithJSONError(w, "menu item", id,
		func(id int64) (store.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) }); !ok {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeJSONError(w, http.StatusBadRequest, "title is required")
		return
	}

	parentID := util.NullInt64FromPtr(req.ParentID)
	if parentID.Valid {
		if parentID.Int64 == id {
			writeJSONError(w, http.StatusBadRequest, "item cannot be its own parent")
			return
		}
		children, err := h.queries.CountMenuItemChildren(r.Context(), util.NullInt64FromValue(id))
		if err != nil {
			slog.Error("counting children", "error", err, "menu_item_id", id)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if children > 0 {
			writeJSONError(w, http.StatusConflict, "item with children cannot become a child")
			return
		}
		switch err := h.checkParent(r.Context(), parentID); {
		case errors.Is(err, errParentMissing):
			writeJSONError(w, http.StatusBadRequest, "parent menu item not found")
			return
		case errors.Is(err, errParentNested):
			writeJSONError(w, http.StatusConflict, "parent must be a top-level item")
			return
		case err != nil:
			slog.Error("checking parent item", "error", err, "menu_item_id", id)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
	}

	displayMode := req.DisplayMode
	if displayMode != model.DisplayModeSingle {
		displayMode = model.DisplayModeList
	}

	if _, err := h.queries.UpdateMenuItem(r.Context(), store.UpdateMenuItemParams{
		Title:       title,
		Slug:        slugOrGenerate(req.Slug, title),
		ParentID:    parentID,
		IsActive:    req.IsActive,
		Hidden:      req.Hidden,
		DisplayMode: displayMode,
		UpdatedAt:   time.Now(),
		ID:          id,
	}); err != nil {
		slog.Error("updating menu item", "error", err, "menu_item_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.invalidate(r)
	slog.Info("menu item updated", "category", model.EventCategoryMenu,
		"menu_item_id", id, "user_id", middleware.GetUserID(r))
	writeJSONSuccess(w, nil)
}

// Destroy removes a menu item via the JSON API, with the same child and
// article guards as the form flow.
// DELETE /admin/api/menu/{id}
func (h *MenuHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}

	err = h.menuService.Delete(r.Context(), id)
	var conflict *service.ConflictError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "menu item not found")
	case errors.As(err, &conflict):
		writeJSONError(w, http.StatusConflict, conflict.Error())
	case err != nil:
		slog.Error("deleting menu item", "error", err, "menu_item_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		h.invalidate(r)
		slog.Info("menu item deleted", "category", model.EventCategoryMenu,
			"menu_item_id", id, "user_id", middleware.GetUserID(r))
		writeJSONSuccess(w, nil)
	}
}

// toggleRequest is the JSON body of a visibility toggle.
type toggleRequest struct {
	Field string `json:"field"`
	Value bool   `json:"value"`
}

// Toggle flips one visibility flag and returns the authoritative state.
// POST /admin/menu/{id}/toggle
func (h *MenuHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	field := service.ToggleField(req.Field)
	if field != service.ToggleFieldActive && field != service.ToggleFieldVisible {
		writeJSONError(w, http.StatusBadRequest, "unknown toggle field")
		return
	}

	state, err := h.menuService.Toggle(r.Context(), id, field, req.Value)
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "menu item not found")
		return
	case errors.Is(err, service.ErrRaceDetected):
		// Another editor changed the row concurrently. Return the fresh
		// state so the client can re-sync.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "state": state})
		return
	case err != nil:
		slog.Error("toggling menu item", "error", err, "menu_item_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.invalidate(r)
	slog.Info("menu item toggled", "category", model.EventCategoryMenu,
		"menu_item_id", id, "field", req.Field, "value", req.Value,
		"user_id", middleware.GetUserID(r))

	writeJSONSuccess(w, map[string]any{"state": state})
}

// reorderRequest is the JSON body of a drag-and-drop reorder.
type reorderRequest struct {
	MovedID  int64  `json:"movedId"`
	TargetID int64  `json:"targetId"`
	ParentID *int64 `json:"parentId"`
}

// Reorder moves an item to another position within its sibling group.
// POST /admin/menu/reorder
func (h *MenuHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.menuService.Reorder(r.Context(), req.MovedID, req.TargetID, util.NullInt64FromPtr(req.ParentID))
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "menu item not found in sibling group")
		return
	case err != nil:
		slog.Error("reordering menu items", "error", err,
			"moved_id", req.MovedID, "target_id", req.TargetID)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.invalidate(r)
	slog.Info("menu reordered", "category", model.EventCategoryMenu,
		"moved_id", req.MovedID, "target_id", req.TargetID,
		"user_id", middleware.GetUserID(r))

	writeJSONSuccess(w, nil)
}
