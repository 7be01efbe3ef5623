// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/service"
	"bip-go/internal/store"
)

// FrontendHandler serves all public pages. Every request path is
// resolved against the menu tree; nothing is routed by explicit
// per-page registration.
type FrontendHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	menuService  *service.MenuService
	cacheManager *cache.Manager
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, menuService *service.MenuService, cm *cache.Manager) *FrontendHandler {
	return &FrontendHandler{
		queries:      store.New(db),
		renderer:     renderer,
		menuService:  menuService,
		cacheManager: cm,
	}
}

// Serve resolves the request path and renders the matching public page.
// GET /*
func (h *FrontendHandler) Serve(w http.ResponseWriter, r *http.Request) {
	cacheKey := h.pageCacheKey(r)
	if cacheKey != "" {
		if body, err := h.cacheManager.Pages.Get(r.Context(), cacheKey); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(body)
			return
		}
	}

	tree := h.menuService.Tree(r.Context())
	loc := service.Resolve(r.URL.Path, r.URL.Query(), tree)

	switch loc.Kind {
	case service.ResolutionHome:
		h.serveHome(w, r, tree, loc, cacheKey)
	case service.ResolutionTopLevel, service.ResolutionChild:
		h.serveSection(w, r, tree, loc, cacheKey)
	case service.ResolutionUnmatchedHierarchical:
		h.serveArticle(w, r, tree, loc, cacheKey)
	default:
		h.serveNotFound(w, r, tree, loc)
	}
}

// pageCacheKey returns the cache key for this request, or "" when the
// response must not be cached. Only anonymous GET responses are cached;
// logged-in users see live data and per-session chrome.
func (h *FrontendHandler) pageCacheKey(r *http.Request) string {
	if h.cacheManager == nil || r.Method != http.MethodGet {
		return ""
	}
	if middleware.GetUser(r) != nil {
		return ""
	}
	key := "page:" + r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	return key
}

// renderPage renders a template, optionally storing the result in the
// page cache, and writes it with the given status code.
func (h *FrontendHandler) renderPage(w http.ResponseWriter, r *http.Request, name string, status int, cacheKey string, data render.TemplateData) {
	buf, err := h.renderer.RenderToBuffer(r, name, data)
	if err != nil {
		logAndInternalError(w, "rendering page", "error", err, "template", name, "path", r.URL.Path)
		return
	}

	if cacheKey != "" && status == http.StatusOK {
		if err := h.cacheManager.Pages.Set(r.Context(), cacheKey, buf.Bytes(), 0); err != nil {
			slog.Warn("storing page in cache", "error", err, "key", cacheKey)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// settingOr reads a setting, returning the fallback when unset.
func (h *FrontendHandler) settingOr(r *http.Request, key, fallback string) string {
	if h.cacheManager != nil {
		if v, err := h.cacheManager.GetSetting(r.Context(), key); err == nil && v != "" {
			return v
		}
	}
	return fallback
}

// serveHome renders the start page: the configured welcome article,
// latest news and the office contact block.
func (h *FrontendHandler) serveHome(w http.ResponseWriter, r *http.Request, tree []service.MenuNode, loc service.ResolvedLocation, cacheKey string) {
	data := map[string]any{
		"Subtitle":       h.settingOr(r, model.SettingKeySiteSubtitle, ""),
		"ContactAddress": h.settingOr(r, model.SettingKeyContactAddress, ""),
		"ContactCity":    h.settingOr(r, model.SettingKeyContactCity, ""),
		"ContactPhone":   h.settingOr(r, model.SettingKeyContactPhone, ""),
		"ContactEmail":   h.settingOr(r, model.SettingKeyContactEmail, ""),
		"OfficeHours":    h.settingOr(r, model.SettingKeyOfficeHours, ""),
		"EPUAP":          h.settingOr(r, model.SettingKeyEPUAP, ""),
		"NIP":            h.settingOr(r, model.SettingKeyNIP, ""),
		"REGON":          h.settingOr(r, model.SettingKeyREGON, ""),
		"BankAccount":    h.settingOr(r, model.SettingKeyBankAccount, ""),
	}

	// Optional welcome article configured by slug.
	if slug := h.settingOr(r, model.SettingKeyHomePage, ""); slug != "" {
		if article, err := h.queries.GetArticleBySlug(r.Context(), slug); err == nil && article.Status == model.ArticleStatusPublished {
			if html, err := renderMarkdown(article.Content); err == nil {
				data["WelcomeHTML"] = html
			}
		}
	}

	// Latest news from the news section, when one exists.
	for i := range tree {
		if tree[i].Item.Slug == service.NewsSlug && tree[i].Item.IsActive {
			articles, err := h.queries.ListPublishedArticlesByMenuItem(r.Context(),
				sql.NullInt64{Int64: tree[i].Item.ID, Valid: true})
			if err != nil {
				slog.Error("listing news articles", "error", err)
				break
			}
			if len(articles) > 10 {
				articles = articles[:10]
			}
			data["Articles"] = articles
			break
		}
	}

	h.renderPage(w, r, "frontend/home", http.StatusOK, cacheKey, render.TemplateData{
		Title:       h.settingOr(r, model.SettingKeySiteTitle, "Biuletyn Informacji Publicznej"),
		SiteTitle:   siteTitle(r, h.cacheManager),
		Menu:        tree,
		Breadcrumbs: service.BuildBreadcrumbs(loc, ""),
		User:        middleware.GetUser(r),
		Data:        data,
	})
}

// serveSection renders a menu section. Sections in single display mode
// show their newest published article directly; list mode shows the
// article index.
func (h *FrontendHandler) serveSection(w http.ResponseWriter, r *http.Request, tree []service.MenuNode, loc service.ResolvedLocation, cacheKey string) {
	item := loc.Parent
	basePath := "/" + item.Slug
	if loc.Child != nil {
		item = loc.Child
		basePath = "/" + loc.Parent.Slug + "/" + loc.Child.Slug
	}

	articles, err := h.queries.ListPublishedArticlesByMenuItem(r.Context(),
		sql.NullInt64{Int64: item.ID, Valid: true})
	if err != nil {
		logAndInternalError(w, "listing section articles", "error", err, "menu_item_id", item.ID)
		return
	}

	if item.DisplayMode == model.DisplayModeSingle && len(articles) > 0 {
		h.renderArticlePage(w, r, tree, loc, cacheKey, articles[0])
		return
	}

	h.renderPage(w, r, "frontend/section", http.StatusOK, cacheKey, render.TemplateData{
		Title:       item.Title,
		SiteTitle:   siteTitle(r, h.cacheManager),
		Menu:        tree,
		Breadcrumbs: service.BuildBreadcrumbs(loc, ""),
		User:        middleware.GetUser(r),
		Data: map[string]any{
			"Section":  item,
			"Articles": articles,
			"BasePath": basePath,
		},
	})
}

// serveArticle handles paths whose remainder names an article slug
// under a matched section.
func (h *FrontendHandler) serveArticle(w http.ResponseWriter, r *http.Request, tree []service.MenuNode, loc service.ResolvedLocation, cacheKey string) {
	slug := loc.Rest
	if idx := strings.LastIndexByte(slug, '/'); idx >= 0 {
		slug = slug[idx+1:]
	}

	article, err := h.queries.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("loading article", "error", err, "slug", slug)
		}
		h.serveNotFound(w, r, tree, loc)
		return
	}
	if article.Status != model.ArticleStatusPublished {
		h.serveNotFound(w, r, tree, loc)
		return
	}

	h.renderArticlePage(w, r, tree, loc, cacheKey, article)
}

func (h *FrontendHandler) renderArticlePage(w http.ResponseWriter, r *http.Request, tree []service.MenuNode, loc service.ResolvedLocation, cacheKey string, article store.Article) {
	html, err := renderMarkdown(article.Content)
	if err != nil {
		logAndInternalError(w, "rendering article content", "error", err, "article_id", article.ID)
		return
	}

	h.renderPage(w, r, "frontend/article", http.StatusOK, cacheKey, render.TemplateData{
		Title:       article.Title,
		SiteTitle:   siteTitle(r, h.cacheManager),
		Menu:        tree,
		Breadcrumbs: service.BuildBreadcrumbs(loc, article.Title),
		User:        middleware.GetUser(r),
		Data: map[string]any{
			"Article": article,
			"HTML":    html,
		},
	})
}

// serveNotFound renders the 404 page. Never cached.
func (h *FrontendHandler) serveNotFound(w http.ResponseWriter, r *http.Request, tree []service.MenuNode, loc service.ResolvedLocation) {
	if loc.Kind != service.ResolutionNotFound {
		rest := loc.Rest
		if idx := strings.LastIndexByte(rest, '/'); idx >= 0 {
			rest = rest[idx+1:]
		}
		loc = service.ResolvedLocation{Kind: service.ResolutionNotFound, Rest: rest}
	}

	h.renderPage(w, r, "frontend/not_found", http.StatusNotFound, "", render.TemplateData{
		Title:       "Nie znaleziono strony",
		SiteTitle:   siteTitle(r, h.cacheManager),
		Menu:        tree,
		Breadcrumbs: service.BuildBreadcrumbs(loc, ""),
		User:        middleware.GetUser(r),
	})
}
