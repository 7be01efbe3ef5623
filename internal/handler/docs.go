// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"bip-go/internal/cache"
	"bip-go/internal/config"
	"bip-go/internal/middleware"
	"bip-go/internal/render"
	"bip-go/internal/version"
)

// DocsDir is the default directory containing documentation files.
const DocsDir = "./docs"

// DocsHandler handles the built-in documentation pages.
type DocsHandler struct {
	renderer     *render.Renderer
	cfg          *config.Config
	cacheManager *cache.Manager
	versionInfo  *version.Info
	docsDir      string
	startTime    time.Time
}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler(renderer *render.Renderer, cfg *config.Config, cm *cache.Manager, startTime time.Time, versionInfo *version.Info) *DocsHandler {
	return &DocsHandler{
		renderer:     renderer,
		cfg:          cfg,
		cacheManager: cm,
		versionInfo:  versionInfo,
		docsDir:      DocsDir,
		startTime:    startTime,
	}
}

// DocsPageData holds data for the docs overview page.
type DocsPageData struct {
	System    DocsSystemInfo
	Endpoints []DocsEndpointGroup
	Guides    []DocsGuide
}

// DocsSystemInfo contains system-level information for display.
type DocsSystemInfo struct {
	Version     string
	GitCommit   string
	BuildTime   string
	GoVersion   string
	Environment string
	ServerPort  int
	DBPath      string
	CacheType   string
	Uptime      string
}

// DocsEndpointGroup groups related endpoints.
type DocsEndpointGroup struct {
	Name      string
	Endpoints []DocsEndpoint
}

// DocsEndpoint describes a single route.
type DocsEndpoint struct {
	Method      string
	Path        string
	Description string
	Auth        string
}

// DocsGuide represents a documentation file available for viewing.
type DocsGuide struct {
	Slug  string
	Title string
}

// DocsGuideData holds data for the guide viewer page.
type DocsGuideData struct {
	Title   string
	Content template.HTML
}

// Overview handles GET /admin/docs.
func (h *DocsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	data := DocsPageData{
		System:    h.getSystemInfo(),
		Endpoints: h.getEndpoints(),
		Guides:    h.listGuides(),
	}

	if err := h.renderer.Render(w, r, "admin/docs", render.TemplateData{
		Title:     "Pomoc",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      data,
	}); err != nil {
		logAndInternalError(w, "rendering docs overview", "error", err)
	}
}

// Guide handles GET /admin/docs/{slug}.
func (h *DocsHandler) Guide(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	// Only [a-zA-Z0-9_-] is allowed, which rules out path traversal.
	if !isValidDocsSlug(slug) {
		http.NotFound(w, r)
		return
	}

	content, err := os.ReadFile(filepath.Join(h.docsDir, slug+".md"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(content, &buf); err != nil {
		http.Error(w, "Failed to render document", http.StatusInternalServerError)
		return
	}

	title := slugToTitle(slug)

	if err := h.renderer.Render(w, r, "admin/docs_guide", render.TemplateData{
		Title:     title,
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data: DocsGuideData{
			Title:   title,
			Content: template.HTML(buf.String()), //nolint:gosec // trusted local markdown files
		},
	}); err != nil {
		logAndInternalError(w, "rendering docs guide", "error", err)
	}
}

// isValidDocsSlug validates that a slug contains only safe characters.
func isValidDocsSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, c := range slug {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// slugToTitle converts a filename slug to a human-readable title.
func slugToTitle(slug string) string {
	title := strings.ReplaceAll(slug, "-", " ")
	title = strings.ReplaceAll(title, "_", " ")

	words := strings.Fields(title)
	for idx, word := range words {
		if word != "" {
			words[idx] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// listGuides scans the docs directory and returns available guides.
func (h *DocsHandler) listGuides() []DocsGuide {
	entries, err := os.ReadDir(h.docsDir)
	if err != nil {
		return nil
	}

	var guides []DocsGuide
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}

		slug := strings.TrimSuffix(name, ".md")
		guides = append(guides, DocsGuide{
			Slug:  slug,
			Title: slugToTitle(slug),
		})
	}

	sort.Slice(guides, func(i, j int) bool {
		return guides[i].Title < guides[j].Title
	})

	return guides
}

// getSystemInfo builds system information from runtime and config.
func (h *DocsHandler) getSystemInfo() DocsSystemInfo {
	cacheType := "Memory"
	if h.cfg.UseRedisCache() {
		cacheType = "Redis"
	}

	ver, commit, buildTime := "dev", "unknown", "unknown"
	if h.versionInfo != nil {
		ver = h.versionInfo.Version
		commit = h.versionInfo.GitCommit
		buildTime = h.versionInfo.BuildTime
	}

	return DocsSystemInfo{
		Version:     ver,
		GitCommit:   commit,
		BuildTime:   buildTime,
		GoVersion:   runtime.Version(),
		Environment: h.cfg.Env,
		ServerPort:  h.cfg.ServerPort,
		DBPath:      h.cfg.DBPath,
		CacheType:   cacheType,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
	}
}

// getEndpoints returns the route reference grouped by area.
func (h *DocsHandler) getEndpoints() []DocsEndpointGroup {
	return []DocsEndpointGroup{
		{
			Name: "Stan usługi",
			Endpoints: []DocsEndpoint{
				{Method: "GET", Path: "/health", Description: "Stan aplikacji", Auth: "publiczny (szczegóły po zalogowaniu)"},
				{Method: "GET", Path: "/health/live", Description: "Kontrola żywotności", Auth: "brak"},
				{Method: "GET", Path: "/health/ready", Description: "Gotowość do obsługi ruchu", Auth: "brak"},
			},
		},
		{
			Name: "Strony publiczne",
			Endpoints: []DocsEndpoint{
				{Method: "GET", Path: "/", Description: "Strona główna biuletynu", Auth: "brak"},
				{Method: "GET", Path: "/{dzial}", Description: "Dział menu najwyższego poziomu", Auth: "brak"},
				{Method: "GET", Path: "/{dzial}/{poddzial}", Description: "Poddział lub artykuł działu", Auth: "brak"},
				{Method: "GET", Path: "/menu/{id}", Description: "Pozycja menu po identyfikatorze", Auth: "brak"},
				{Method: "POST", Path: "/api/article/{id}/view", Description: "Rejestracja odsłony artykułu", Auth: "brak"},
			},
		},
		{
			Name: "Panel administracyjny",
			Endpoints: []DocsEndpoint{
				{Method: "GET", Path: "/admin", Description: "Pulpit", Auth: "sesja"},
				{Method: "GET", Path: "/admin/menu", Description: "Struktura menu", Auth: "redaktor"},
				{Method: "POST", Path: "/admin/menu/reorder", Description: "Zmiana kolejności pozycji", Auth: "redaktor"},
				{Method: "POST", Path: "/admin/menu/{id}/toggle", Description: "Przełączenie widoczności pozycji", Auth: "redaktor"},
				{Method: "GET", Path: "/admin/articles", Description: "Artykuły", Auth: "redaktor"},
				{Method: "GET", Path: "/admin/articles/{id}/versions", Description: "Historia wersji artykułu", Auth: "redaktor"},
				{Method: "GET", Path: "/admin/users", Description: "Użytkownicy", Auth: "administrator"},
				{Method: "GET", Path: "/admin/settings", Description: "Ustawienia witryny", Auth: "administrator"},
				{Method: "GET", Path: "/admin/events", Description: "Dziennik zdarzeń", Auth: "administrator"},
			},
		},
	}
}
