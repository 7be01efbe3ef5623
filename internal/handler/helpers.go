// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bip-go/internal/cache"
	"bip-go/internal/model"
	"bip-go/internal/util"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Table))

	// htmlPolicy keeps formatting tags and tables but strips scripts and
	// event handlers. Content comes from trusted editors, but imported
	// legacy content may carry markup of unknown origin.
	htmlPolicy = func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.AllowTables()
		return p
	}()
)

// renderMarkdown converts Markdown content to sanitized HTML.
func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}

// siteTitle reads the configured site title, falling back to the
// standard bulletin name when unset.
func siteTitle(r *http.Request, cm *cache.Manager) string {
	if cm != nil {
		if title, err := cm.GetSetting(r.Context(), model.SettingKeySiteTitle); err == nil && title != "" {
			return title
		}
	}
	return "Biuletyn Informacji Publicznej"
}

// parseIDParam extracts the {id} URL parameter as an int64.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// clientIP extracts the client IP, preferring reverse proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.IndexByte(ip, ','); idx > 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}
	return host
}

// viewerHash derives an anonymous client fingerprint for view counting.
// The raw IP and user agent are never stored.
func viewerHash(r *http.Request) string {
	sum := sha256.Sum256([]byte(clientIP(r) + "|" + r.UserAgent()))
	return hex.EncodeToString(sum[:])
}

// slugOrGenerate returns the submitted slug when valid, otherwise a slug
// generated from the title.
func slugOrGenerate(slug, title string) string {
	slug = strings.TrimSpace(slug)
	if slug != "" && util.IsValidSlug(slug) {
		return slug
	}
	return util.Slugify(title)
}
