// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"bip-go/internal/cache"
	"bip-go/internal/model"
	"bip-go/internal/seo"
	"bip-go/internal/service"
	"bip-go/internal/store"
)

// SEOHandler serves the crawler-facing files: sitemap.xml, robots.txt
// and the RFC 9116 security.txt.
type SEOHandler struct {
	queries      *store.Queries
	menuService  *service.MenuService
	cacheManager *cache.Manager
}

// NewSEOHandler creates a new SEOHandler.
func NewSEOHandler(db *sql.DB, menuService *service.MenuService, cm *cache.Manager) *SEOHandler {
	return &SEOHandler{
		queries:      store.New(db),
		menuService:  menuService,
		cacheManager: cm,
	}
}

// siteURL returns the configured absolute base URL, falling back to the
// request host.
func (h *SEOHandler) siteURL(r *http.Request) string {
	if h.cacheManager != nil {
		if url, err := h.cacheManager.GetSetting(r.Context(), model.SettingKeySiteURL); err == nil && url != "" {
			return url
		}
	}
	scheme := "https"
	if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
		scheme = "http"
	}
	return scheme + "://" + r.Host
}

// Sitemap serves sitemap.xml with all public sections and published
// articles. Hidden and inactive menu items stay out, as do articles not
// attached to a reachable section.
// GET /sitemap.xml
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	builder := seo.NewSitemapBuilder(h.siteURL(r))
	builder.AddHomepage()

	// Section paths double as the article URL prefixes.
	sectionPaths := make(map[int64]string)
	for _, node := range h.menuService.Tree(r.Context()) {
		if !node.Item.IsActive || node.Item.Hidden {
			continue
		}
		parentPath := "/" + node.Item.Slug
		sectionPaths[node.Item.ID] = parentPath
		builder.AddSection(seo.SitemapSection{Path: parentPath, UpdatedAt: node.Item.UpdatedAt})

		for _, child := range node.Children {
			if !child.IsActive || child.Hidden {
				continue
			}
			childPath := parentPath + "/" + child.Slug
			sectionPaths[child.ID] = childPath
			builder.AddSection(seo.SitemapSection{Path: childPath, UpdatedAt: child.UpdatedAt})
		}
	}

	articles, err := h.queries.ListPublishedArticles(r.Context())
	if err != nil {
		logAndInternalError(w, "listing articles for sitemap", "error", err)
		return
	}
	for _, article := range articles {
		if !article.MenuItemID.Valid {
			continue
		}
		base, ok := sectionPaths[article.MenuItemID.Int64]
		if !ok {
			continue
		}
		builder.AddArticle(seo.SitemapArticle{
			Path:      base + "/" + article.Slug,
			UpdatedAt: article.UpdatedAt,
		})
	}

	body, err := builder.Build()
	if err != nil {
		logAndInternalError(w, "building sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

// Robots serves robots.txt.
// GET /robots.txt
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.GenerateRobots(seo.RobotsConfig{SiteURL: h.siteURL(r)})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// SecurityTxt serves .well-known/security.txt when a contact email is
// configured.
// GET /.well-known/security.txt
func (h *SEOHandler) SecurityTxt(w http.ResponseWriter, r *http.Request) {
	contact := ""
	if h.cacheManager != nil {
		if v, err := h.cacheManager.GetSetting(r.Context(), model.SettingKeyContactEmail); err == nil {
			contact = v
		}
	}
	if contact == "" {
		http.NotFound(w, r)
		return
	}

	body := seo.GenerateSecurityTxt(seo.SecurityTxtConfig{
		Contact:            contact,
		PreferredLanguages: "pl",
		Canonical:          h.siteURL(r) + "/.well-known/security.txt",
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}
