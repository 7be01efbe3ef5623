// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bip-go/internal/auth"
	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/store"
)

// UserHandler handles the user administration routes. All routes are
// admin-only, enforced by middleware.
type UserHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	cacheManager *cache.Manager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *sql.DB, renderer *render.Renderer, cm *cache.Manager) *UserHandler {
	return &UserHandler{
		queries:      store.New(db),
		renderer:     renderer,
		cacheManager: cm,
	}
}

// List renders the user overview.
// GET /admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context(), store.ListUsersParams{Limit: 200, Offset: 0})
	if err != nil {
		logAndInternalError(w, "listing users", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/users", render.TemplateData{
		Title:     "Użytkownicy",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      map[string]any{"Users": users},
	}); err != nil {
		logAndInternalError(w, "rendering user list", "error", err)
	}
}

// NewForm renders the form for a new user.
// GET /admin/users/new
func (h *UserHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// EditForm renders the form for an existing user.
// GET /admin/users/{id}
func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "Nieprawidłowy identyfikator")
		return
	}

	target, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "użytkownik", id,
		func(id int64) (store.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &target)
}

func (h *UserHandler) renderForm(w http.ResponseWriter, r *http.Request, target *store.User) {
	data := map[string]any{}
	if target != nil {
		data["Target"] = target
	}

	if err := h.renderer.Render(w, r, "admin/user_form", render.TemplateData{
		Title:     "Użytkownicy",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      data,
	}); err != nil {
		logAndInternalError(w, "rendering user form", "error", err)
	}
}

// userFormValues reads the shared form fields for create and update.
func userFormValues(r *http.Request) (username, firstName, lastName, email, role string) {
	username = strings.TrimSpace(r.FormValue("username"))
	firstName = strings.TrimSpace(r.FormValue("first_name"))
	lastName = strings.TrimSpace(r.FormValue("last_name"))
	email = strings.TrimSpace(r.FormValue("email"))

	role = r.FormValue("role")
	if role != model.RoleAdmin {
		role = model.RoleEditor
	}
	return
}

// Create handles the new user submission.
// POST /admin/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsersNew) {
		return
	}

	username, firstName, lastName, email, role := userFormValues(r)
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		flashError(w, r, h.renderer, redirectAdminUsersNew, "Nazwa użytkownika, e-mail i hasło są wymagane")
		return
	}
	if len(password) < 8 {
		flashError(w, r, h.renderer, redirectAdminUsersNew, "Hasło musi mieć co najmniej 8 znaków")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "hashing password", "error", err)
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Error("creating user", "error", err, "username", username)
		flashError(w, r, h.renderer, redirectAdminUsersNew, "Nie można utworzyć użytkownika. Nazwa i e-mail muszą być unikalne.")
		return
	}

	slog.Info("user created", "category", model.EventCategoryUser,
		"target_user_id", user.ID, "role", role, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Użytkownik utworzony")
}

// Update handles the edit form submission. The password is changed only
// when a new one is provided.
// POST /admin/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "Nieprawidłowy identyfikator")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}

	target, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "użytkownik", id,
		func(id int64) (store.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	username, firstName, lastName, email, role := userFormValues(r)
	if username == "" || email == "" {
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminUsersID, id), "Nazwa użytkownika i e-mail są wymagane")
		return
	}

	// Demoting the last admin would lock everyone out of user management.
	if target.Role == model.RoleAdmin && role != model.RoleAdmin {
		admins, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
		if err != nil {
			logAndInternalError(w, "counting admins", "error", err)
			return
		}
		if admins <= 1 {
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminUsersID, id),
				"Nie można odebrać uprawnień ostatniemu administratorowi")
			return
		}
	}

	if _, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,
		UpdatedAt: time.Now(),
		ID:        id,
	}); err != nil {
		slog.Error("updating user", "error", err, "target_user_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminUsersID, id), "Nie można zapisać użytkownika")
		return
	}

	if password := r.FormValue("password"); password != "" {
		if len(password) < 8 {
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminUsersID, id), "Hasło musi mieć co najmniej 8 znaków")
			return
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			logAndInternalError(w, "hashing password", "error", err)
			return
		}
		if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
			PasswordHash: hash,
			UpdatedAt:    time.Now(),
			ID:           id,
		}); err != nil {
			slog.Error("updating password", "error", err, "target_user_id", id)
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminUsersID, id), "Nie można zmienić hasła")
			return
		}
	}

	slog.Info("user updated", "category", model.EventCategoryUser,
		"target_user_id", id, "role", role, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Użytkownik zapisany")
}

// Delete removes a user account.
// POST /admin/users/{id}/delete
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "Nieprawidłowy identyfikator")
		return
	}

	if id == middleware.GetUserID(r) {
		flashError(w, r, h.renderer, redirectAdminUsers, "Nie można usunąć własnego konta")
		return
	}

	target, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "użytkownik", id,
		func(id int64) (store.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	if target.Role == model.RoleAdmin {
		admins, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
		if err != nil {
			logAndInternalError(w, "counting admins", "error", err)
			return
		}
		if admins <= 1 {
			flashError(w, r, h.renderer, redirectAdminUsers, "Nie można usunąć ostatniego administratora")
			return
		}
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting user", "error", err, "target_user_id", id)
		return
	}

	slog.Info("user deleted", "category", model.EventCategoryUser,
		"target_user_id", id, "username", target.Username, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Użytkownik usunięty")
}
