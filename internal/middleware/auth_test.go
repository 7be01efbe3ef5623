package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bip-go/internal/model"
	"bip-go/internal/store"
)

func requestWithUser(role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	user := store.User{ID: 1, Username: "admin", Role: role}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

func TestGetUserMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(r) != nil {
		t.Error("GetUser = non-nil for empty context")
	}
	if GetUserID(r) != 0 {
		t.Error("GetUserID != 0 for empty context")
	}
}

func TestGetUserFromContext(t *testing.T) {
	r := requestWithUser(model.RoleEditor)
	user := GetUser(r)
	if user == nil {
		t.Fatal("GetUser = nil")
	}
	if user.ID != 1 || user.Role != model.RoleEditor {
		t.Errorf("user = %+v", user)
	}
}

func TestRequireRoleHierarchy(t *testing.T) {
	tests := []struct {
		name       string
		userRole   string
		minRole    string
		wantStatus int
	}{
		{"admin accesses admin", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"admin accesses editor", model.RoleAdmin, model.RoleEditor, http.StatusOK},
		{"editor accesses editor", model.RoleEditor, model.RoleEditor, http.StatusOK},
		{"editor denied admin", model.RoleEditor, model.RoleAdmin, http.StatusForbidden},
		{"unknown role denied", "viewer", model.RoleEditor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			rec := httptest.NewRecorder()
			RequireRole(tt.minRole)(next).ServeHTTP(rec, requestWithUser(tt.userRole))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleRedirectsAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without user")
	})
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	RequireRole(model.RoleEditor)(next).ServeHTTP(rec, r)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}
