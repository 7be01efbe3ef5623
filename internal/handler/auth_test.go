// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"bip-go/internal/middleware"
)

func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func TestNewAuthHandler(t *testing.T) {
	db := testHandlerSetup(t)
	sm := testSessionManager(t)
	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	h := NewAuthHandler(db, nil, sm, lp)
	if h == nil {
		t.Fatal("NewAuthHandler returned nil")
	}
	if h.queries == nil {
		t.Error("queries should not be nil")
	}
	if h.sessionManager != sm {
		t.Error("sessionManager not set correctly")
	}
}

// Login and Logout need a renderer for flash messages; the full flow is
// covered by the login protection and password tests in their packages.

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{30 * time.Second, "30 s"},
		{time.Minute, "1 min"},
		{5 * time.Minute, "5 min"},
		{90 * time.Second, "1 min"},
		{time.Hour, "1 godz."},
		{2 * time.Hour, "2 godz."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
