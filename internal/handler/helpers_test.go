// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSlugOrGenerate(t *testing.T) {
	tests := []struct {
		slug  string
		title string
		want  string
	}{
		{"wlasny-slug", "Tytuł", "wlasny-slug"},
		{"", "Uchwała budżetowa", "uchwala-budzetowa"},
		{"  ", "Zamówienia publiczne", "zamowienia-publiczne"},
		{"Niepoprawny Slug!", "Ogłoszenia", "ogloszenia"},
	}

	for _, tt := range tests {
		if got := slugOrGenerate(tt.slug, tt.title); got != tt.want {
			t.Errorf("slugOrGenerate(%q, %q) = %q, want %q", tt.slug, tt.title, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		realIP string
		fwdFor string
		remote string
		want   string
	}{
		{"real ip header", "203.0.113.5", "", "10.0.0.1:1234", "203.0.113.5"},
		{"forwarded for", "", "203.0.113.5, 10.0.0.2", "10.0.0.1:1234", "203.0.113.5"},
		{"remote addr", "", "", "10.0.0.1:1234", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.fwdFor != "" {
				req.Header.Set("X-Forwarded-For", tt.fwdFor)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViewerHashStable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.5")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	first := viewerHash(req)
	second := viewerHash(req)
	if first != second {
		t.Error("same client should hash to the same fingerprint")
	}
	if strings.Contains(first, "203.0.113.5") {
		t.Error("fingerprint must not contain the raw IP")
	}

	req.Header.Set("User-Agent", "curl/8.0")
	if viewerHash(req) == first {
		t.Error("different user agent should change the fingerprint")
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html, err := renderMarkdown("# Nagłówek\n\n<script>alert(1)</script>\n\n| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("renderMarkdown: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("script tag survived sanitization")
	}
	if !strings.Contains(html, "<h1") {
		t.Error("heading missing from rendered output")
	}
	if !strings.Contains(html, "<table") {
		t.Error("table missing from rendered output")
	}
}
