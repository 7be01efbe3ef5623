// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"

	"bip-go/internal/auth"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/session"
	"bip-go/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page.
// Already-authenticated users are sent straight to the admin panel.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID); userID > 0 {
		if _, err := h.queries.GetUserByID(r.Context(), userID); err == nil {
			http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
			return
		}
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title:     "Logowanie",
		SiteTitle: "Biuletyn Informacji Publicznej",
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Podaj nazwę użytkownika i hasło")
		return
	}

	ip := clientIP(r)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(username); locked {
			slog.Warn("login attempt on locked account",
				"category", model.EventCategoryAuth, "username", username, "ip", ip)
			flashError(w, r, h.renderer, redirectLogin,
				"Konto tymczasowo zablokowane. Spróbuj ponownie za "+formatDuration(remaining))
			return
		}
	}

	user, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("database error during login", "error", err)
		}
		// Record the failure even for unknown usernames to prevent enumeration.
		h.handleFailedLogin(w, r, username, ip, nil)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, "Nieprawidłowa nazwa użytkownika lub hasło")
		return
	}
	if !valid {
		h.handleFailedLogin(w, r, username, ip, &user.ID)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}

	// Re-hash if the stored hash uses outdated parameters.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	// Regenerate session ID to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	flashSuccess(w, r, h.renderer, redirectAdmin, "Zalogowano pomyślnie")
}

// handleFailedLogin records a failed attempt and renders the right flash message.
func (h *AuthHandler) handleFailedLogin(w http.ResponseWriter, r *http.Request, username, ip string, userID *int64) {
	args := []any{"category", model.EventCategoryAuth, "username", username, "ip", ip}
	if userID != nil {
		args = append(args, "user_id", *userID)
	}
	slog.Warn("login failed", args...)

	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
			flashError(w, r, h.renderer, redirectLogin,
				"Zbyt wiele nieudanych prób. Konto zablokowane na "+formatDuration(lockDuration))
			return
		}
		if remaining := h.loginProtection.GetRemainingAttempts(username); remaining > 0 && remaining <= 3 {
			flashError(w, r, h.renderer, redirectLogin,
				"Nieprawidłowe dane logowania. Pozostałe próby: "+strconv.Itoa(remaining))
			return
		}
	}

	flashError(w, r, h.renderer, redirectLogin, "Nieprawidłowa nazwa użytkownika lub hasło")
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if userID > 0 {
		slog.Info("user logged out", "user_id", userID)
	}

	flashAndRedirect(w, r, h.renderer, redirectLogin, "Wylogowano", "info")
}

// formatDuration formats a duration into a short human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + " s"
	}
	if d < time.Hour {
		return strconv.Itoa(int(d.Minutes())) + " min"
	}
	return strconv.Itoa(int(d.Hours())) + " godz."
}
