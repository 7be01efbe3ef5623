// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"bip-go/internal/cache"
	"bip-go/internal/middleware"
	"bip-go/internal/model"
	"bip-go/internal/render"
	"bip-go/internal/service"
	"bip-go/internal/store"
	"bip-go/internal/util"
)

const articleListPageSize = 50

// ArticleHandler handles the article administration routes.
type ArticleHandler struct {
	db           *sql.DB
	queries      *store.Queries
	renderer     *render.Renderer
	menuService  *service.MenuService
	cacheManager *cache.Manager
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(db *sql.DB, renderer *render.Renderer, menuService *service.MenuService, cm *cache.Manager) *ArticleHandler {
	return &ArticleHandler{
		db:           db,
		queries:      store.New(db),
		renderer:     renderer,
		menuService:  menuService,
		cacheManager: cm,
	}
}

func (h *ArticleHandler) invalidate(r *http.Request) {
	if h.cacheManager != nil {
		h.cacheManager.InvalidateContent(r.Context())
	}
}

// List renders the article overview.
// GET /admin/articles
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	articles, err := h.queries.ListArticles(r.Context(), store.ListArticlesParams{
		Limit:  articleListPageSize,
		Offset: (page - 1) * articleListPageSize,
	})
	if err != nil {
		logAndInternalError(w, "listing articles", "error", err)
		return
	}

	total, err := h.queries.CountArticles(r.Context())
	if err != nil {
		logAndInternalError(w, "counting articles", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/articles", render.TemplateData{
		Title:     "Artykuły",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data: map[string]any{
			"Articles":   articles,
			"Page":       page,
			"TotalPages": (total + articleListPageSize - 1) / articleListPageSize,
		},
	}); err != nil {
		logAndInternalError(w, "rendering article list", "error", err)
	}
}

// NewForm renders the form for a new article.
// GET /admin/articles/new
func (h *ArticleHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// EditForm renders the form for an existing article.
// GET /admin/articles/{id}
func (h *ArticleHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminArticles, "Nieprawidłowy identyfikator")
		return
	}

	article, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "artykuł", id,
		func(id int64) (store.Article, error) { return h.queries.GetArticleByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &article)
}

func (h *ArticleHandler) renderForm(w http.ResponseWriter, r *http.Request, article *store.Article) {
	tree := h.menuService.Tree(r.Context())

	data := map[string]any{"Tree": tree}
	if article != nil {
		data["Article"] = article
	}

	if err := h.renderer.Render(w, r, "admin/article_form", render.TemplateData{
		Title:     "Artykuły",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data:      data,
	}); err != nil {
		logAndInternalError(w, "rendering article form", "error", err)
	}
}

// articleFormValues reads the shared form fields for create and update.
func articleFormValues(r *http.Request) (title, slug, content, status string, excerpt sql.NullString, menuItemID sql.NullInt64) {
	title = strings.TrimSpace(r.FormValue("title"))
	slug = slugOrGenerate(r.FormValue("slug"), title)
	content = r.FormValue("content")

	excerpt = util.NullStringFromValue(strings.TrimSpace(r.FormValue("excerpt")))
	menuItemID = util.ParseNullInt64(r.FormValue("menu_item_id"))

	status = r.FormValue("status")
	if status != model.ArticleStatusPublished {
		status = model.ArticleStatusDraft
	}
	return
}

// singleModeConflict reports whether assigning an article to menuItemID
// would put a second non-deleted article on a display_mode=single node.
// current is the article being edited, nil on create.
func (h *ArticleHandler) singleModeConflict(ctx context.Context, menuItemID sql.NullInt64, current *store.Article) (bool, error) {
	if !menuItemID.Valid {
		return false, nil
	}

	item, err := h.queries.GetMenuItemByID(ctx, menuItemID.Int64)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if item.DisplayMode != model.DisplayModeSingle {
		return false, nil
	}

	count, err := h.queries.CountMenuItemArticles(ctx, menuItemID)
	if err != nil {
		return false, err
	}
	// The edited article may already occupy the node.
	if current != nil && current.MenuItemID.Valid && current.MenuItemID.Int64 == menuItemID.Int64 &&
		current.Status != model.ArticleStatusDeleted {
		count--
	}
	return count > 0, nil
}

const msgSingleModeTaken = "Ta pozycja menu wyświetla pojedynczy artykuł i ma już przypisany artykuł"

// Create handles the new article submission.
// POST /admin/articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminArticlesNew) {
		return
	}

	title, slug, content, status, excerpt, menuItemID := articleFormValues(r)
	if title == "" {
		flashError(w, r, h.renderer, redirectAdminArticlesNew, "Tytuł jest wymagany")
		return
	}

	conflict, err := h.singleModeConflict(r.Context(), menuItemID, nil)
	if err != nil {
		logAndInternalError(w, "checking single article node", "error", err)
		return
	}
	if conflict {
		flashError(w, r, h.renderer, redirectAdminArticlesNew, msgSingleModeTaken)
		return
	}

	userID := middleware.GetUserID(r)
	creator := sql.NullInt64{Int64: userID, Valid: userID > 0}

	now := time.Now()
	article, err := h.queries.CreateArticle(r.Context(), store.CreateArticleParams{
		Title:      title,
		Slug:       slug,
		Content:    content,
		Excerpt:    excerpt,
		Status:     status,
		MenuItemID: menuItemID,
		CreatedBy:  creator,
		UpdatedBy:  creator,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		slog.Error("creating article", "error", err, "slug", slug)
		flashError(w, r, h.renderer, redirectAdminArticlesNew, "Nie można utworzyć artykułu. Slug musi być unikalny.")
		return
	}

	if status == model.ArticleStatusPublished {
		if _, err := h.queries.PublishArticle(r.Context(), store.PublishArticleParams{
			PublishedBy: creator,
			PublishedAt: sql.NullTime{Time: now, Valid: true},
			UpdatedAt:   now,
			ID:          article.ID,
		}); err != nil {
			slog.Error("setting publication time", "error", err, "article_id", article.ID)
		}
	}

	h.invalidate(r)
	slog.Info("article created", "category", model.EventCategoryArticle,
		"article_id", article.ID, "status", status, "user_id", userID)
	flashSuccess(w, r, h.renderer, redirectAdminArticles, "Artykuł utworzony")
}

// snapshotVersion stores the current article content as a new version entry.
func (h *ArticleHandler) snapshotVersion(r *http.Request, article store.Article, summary string) error {
	latest, err := h.queries.GetLatestArticleVersionNumber(r.Context(), article.ID)
	if err != nil {
		return fmt.Errorf("reading latest version number: %w", err)
	}

	userID := middleware.GetUserID(r)
	_, err = h.queries.CreateArticleVersion(r.Context(), store.CreateArticleVersionParams{
		ArticleID:     article.ID,
		VersionNumber: latest + 1,
		Title:         article.Title,
		Content:       article.Content,
		Excerpt:       article.Excerpt,
		UpdatedBy:     sql.NullInt64{Int64: userID, Valid: userID > 0},
		ChangeSummary: sql.NullString{String: summary, Valid: summary != ""},
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating version snapshot: %w", err)
	}
	return nil
}

// Update handles the edit form submission. The previous content is
// snapshotted as a version entry before the new content is saved.
// POST /admin/articles/{id}
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminArticles, "Nieprawidłowy identyfikator")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminArticles) {
		return
	}

	current, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "artykuł", id,
		func(id int64) (store.Article, error) { return h.queries.GetArticleByID(r.Context(), id) })
	if !ok {
		return
	}

	title, slug, content, status, excerpt, menuItemID := articleFormValues(r)
	if title == "" {
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesID, id), "Tytuł jest wymagany")
		return
	}

	conflict, err := h.singleModeConflict(r.Context(), menuItemID, &current)
	if err != nil {
		logAndInternalError(w, "checking single article node", "error", err)
		return
	}
	if conflict {
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesID, id), msgSingleModeTaken)
		return
	}

	changed := current.Title != title || current.Content != content || current.Excerpt != excerpt
	if changed {
		if err := h.snapshotVersion(r, current, r.FormValue("change_summary")); err != nil {
			slog.Error("snapshotting article version", "error", err, "article_id", id)
			flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesID, id), "Nie można zapisać wersji artykułu")
			return
		}
	}

	userID := middleware.GetUserID(r)
	editor := sql.NullInt64{Int64: userID, Valid: userID > 0}

	now := time.Now()
	if _, err := h.queries.UpdateArticle(r.Context(), store.UpdateArticleParams{
		Title:      title,
		Slug:       slug,
		Content:    content,
		Excerpt:    excerpt,
		Status:     status,
		MenuItemID: menuItemID,
		UpdatedBy:  editor,
		UpdatedAt:  now,
		ID:         id,
	}); err != nil {
		slog.Error("updating article", "error", err, "article_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesID, id), "Nie można zapisać artykułu")
		return
	}

	// First transition to published stamps the publication time.
	if status == model.ArticleStatusPublished && !current.PublishedAt.Valid {
		if _, err := h.queries.PublishArticle(r.Context(), store.PublishArticleParams{
			PublishedBy: editor,
			PublishedAt: sql.NullTime{Time: now, Valid: true},
			UpdatedAt:   now,
			ID:          id,
		}); err != nil {
			slog.Error("setting publication time", "error", err, "article_id", id)
		}
	}

	h.invalidate(r)
	slog.Info("article updated", "category", model.EventCategoryArticle,
		"article_id", id, "status", status, "user_id", userID)
	flashSuccess(w, r, h.renderer, redirectAdminArticles, "Artykuł zapisany")
}

// Delete soft-deletes an article. The row and its versions are kept.
// POST /admin/articles/{id}/delete
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminArticles, "Nieprawidłowy identyfikator")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "artykuł", id,
		func(id int64) (store.Article, error) { return h.queries.GetArticleByID(r.Context(), id) }); !ok {
		return
	}

	userID := middleware.GetUserID(r)
	if err := h.queries.UpdateArticleStatus(r.Context(), store.UpdateArticleStatusParams{
		Status:    model.ArticleStatusDeleted,
		UpdatedBy: sql.NullInt64{Int64: userID, Valid: userID > 0},
		UpdatedAt: time.Now(),
		ID:        id,
	}); err != nil {
		logAndInternalError(w, "deleting article", "error", err, "article_id", id)
		return
	}

	h.invalidate(r)
	slog.Info("article deleted", "category", model.EventCategoryArticle,
		"article_id", id, "user_id", userID)
	flashSuccess(w, r, h.renderer, redirectAdminArticles, "Artykuł usunięty")
}

// Versions renders the version history of an article.
// GET /admin/articles/{id}/versions
func (h *ArticleHandler) Versions(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminArticles, "Nieprawidłowy identyfikator")
		return
	}

	article, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "artykuł", id,
		func(id int64) (store.Article, error) { return h.queries.GetArticleByID(r.Context(), id) })
	if !ok {
		return
	}

	versions, err := h.queries.ListArticleVersions(r.Context(), id)
	if err != nil {
		logAndInternalError(w, "listing article versions", "error", err, "article_id", id)
		return
	}

	if err := h.renderer.Render(w, r, "admin/article_versions", render.TemplateData{
		Title:     "Historia wersji",
		SiteTitle: siteTitle(r, h.cacheManager),
		User:      middleware.GetUser(r),
		Data: map[string]any{
			"Article":  article,
			"Versions": versions,
		},
	}); err != nil {
		logAndInternalError(w, "rendering version history", "error", err)
	}
}

// Restore replaces the current content with a stored version. The state
// being replaced is snapshotted first, so a restore is itself undoable.
// POST /admin/articles/{id}/versions/{version}/restore
func (h *ArticleHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminArticles, "Nieprawidłowy identyfikator")
		return
	}

	versionNumber, err := strconv.ParseInt(chi.URLParam(r, "version"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesIDVers, id), "Nieprawidłowy numer wersji")
		return
	}

	current, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminArticles, "artykuł", id,
		func(id int64) (store.Article, error) { return h.queries.GetArticleByID(r.Context(), id) })
	if !ok {
		return
	}

	version, ok := requireEntityWithRedirect(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesIDVers, id),
		"wersja artykułu", versionNumber,
		func(v int64) (store.ArticleVersion, error) {
			return h.queries.GetArticleVersion(r.Context(), store.GetArticleVersionParams{
				ArticleID:     id,
				VersionNumber: v,
			})
		})
	if !ok {
		return
	}

	summary := fmt.Sprintf("Przywrócono wersję %d", versionNumber)
	if err := h.snapshotVersion(r, current, summary); err != nil {
		slog.Error("snapshotting before restore", "error", err, "article_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesIDVers, id), "Nie można zapisać wersji artykułu")
		return
	}

	userID := middleware.GetUserID(r)
	if _, err := h.queries.UpdateArticle(r.Context(), store.UpdateArticleParams{
		Title:      version.Title,
		Slug:       current.Slug,
		Content:    version.Content,
		Excerpt:    version.Excerpt,
		Status:     current.Status,
		MenuItemID: current.MenuItemID,
		UpdatedBy:  sql.NullInt64{Int64: userID, Valid: userID > 0},
		UpdatedAt:  time.Now(),
		ID:         id,
	}); err != nil {
		slog.Error("restoring article version", "error", err, "article_id", id, "version", versionNumber)
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesIDVers, id), "Nie można przywrócić wersji")
		return
	}

	h.invalidate(r)
	slog.Info("article version restored", "category", model.EventCategoryArticle,
		"article_id", id, "version", versionNumber, "user_id", userID)
	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectAdminArticlesID, id), "Wersja przywrócona")
}
