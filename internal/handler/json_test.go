// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONError(rec, http.StatusNotFound, "not found")

	assertStatus(t, rec.Code, http.StatusNotFound)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := decodeJSONBody(t, rec)
	if body["ok"] != false {
		t.Errorf("ok = %v, want false", body["ok"])
	}
	if body["error"] != "not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONSuccess(rec, map[string]any{"counted": true})

	assertStatus(t, rec.Code, http.StatusOK)
	body := decodeJSONBody(t, rec)
	if body["ok"] != true {
		t.Errorf("ok = %v, want true", body["ok"])
	}
	if body["counted"] != true {
		t.Errorf("counted = %v, want true", body["counted"])
	}
}

func TestWriteJSONSuccessNilData(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONSuccess(rec, nil)

	body := decodeJSONBody(t, rec)
	if body["ok"] != true {
		t.Errorf("ok = %v, want true", body["ok"])
	}
}
