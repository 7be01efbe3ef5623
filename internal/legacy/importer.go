// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bip-go/internal/model"
	"bip-go/internal/store"
	"bip-go/internal/util"
)

// Source provides legacy data to the importer. *Reader satisfies it;
// tests supply fakes.
type Source interface {
	MenuEntries() ([]MenuEntry, error)
	Articles() ([]Article, error)
	Settings() (map[string]string, error)
}

// Result summarizes one import run.
type Result struct {
	RunID     string
	MenuItems int
	Articles  int
	Settings  int
	Skipped   int
	Errors    []string
}

// settingKeyMap maps legacy setting names to their current keys.
// Unknown legacy settings are skipped.
var settingKeyMap = map[string]string{
	"title":        model.SettingKeySiteTitle,
	"subtitle":     model.SettingKeySiteSubtitle,
	"description":  model.SettingKeySiteDescription,
	"address":      model.SettingKeyContactAddress,
	"city":         model.SettingKeyContactCity,
	"phone":        model.SettingKeyContactPhone,
	"email":        model.SettingKeyContactEmail,
	"office_hours": model.SettingKeyOfficeHours,
	"epuap":        model.SettingKeyEPUAP,
	"nip":          model.SettingKeyNIP,
	"regon":        model.SettingKeyREGON,
	"bank_account": model.SettingKeyBankAccount,
}

// Importer copies menu structure, articles and contact settings from a
// legacy source into the bulletin database.
type Importer struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewImporter creates a new Importer.
func NewImporter(db *sql.DB, logger *slog.Logger) *Importer {
	return &Importer{
		queries: store.New(db),
		logger:  logger,
	}
}

// Run performs a one-shot import. The target database must contain no
// menu items; the importer does not merge into existing content.
func (imp *Importer) Run(ctx context.Context, src Source) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := imp.logger.With("run_id", result.RunID)

	existing, err := imp.queries.CountMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking target database: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("target database already has %d menu items; import requires an empty menu", existing)
	}

	logger.Info("legacy import started")

	menuIDs, err := imp.importMenu(ctx, src, result, logger)
	if err != nil {
		return result, err
	}
	if err := imp.importArticles(ctx, src, result, menuIDs, logger); err != nil {
		return result, err
	}
	if err := imp.importSettings(ctx, src, result); err != nil {
		return result, err
	}

	logger.Info("legacy import finished",
		"category", model.EventCategorySystem,
		"menu_items", result.MenuItems, "articles", result.Articles,
		"settings", result.Settings, "skipped", result.Skipped,
		"errors", len(result.Errors))

	return result, nil
}

// importMenu copies the menu tree and returns the legacy-to-new ID map.
func (imp *Importer) importMenu(ctx context.Context, src Source, result *Result, logger *slog.Logger) (map[int64]int64, error) {
	entries, err := src.MenuEntries()
	if err != nil {
		return nil, fmt.Errorf("reading legacy menu: %w", err)
	}

	menuIDs := make(map[int64]int64, len(entries))
	// Slugs are unique per sibling group; track used slugs per parent.
	usedSlugs := make(map[int64]map[string]bool)
	sortOrders := make(map[int64]int64)
	now := time.Now()

	// Parents arrive before children (ordered by parent_id), but guard
	// against orphans whose parent row is missing.
	for _, e := range entries {
		var parentID sql.NullInt64
		if e.ParentID != 0 {
			newParent, ok := menuIDs[e.ParentID]
			if !ok {
				result.Skipped++
				result.Errors = append(result.Errors,
					fmt.Sprintf("menu entry %d: parent %d not imported", e.ID, e.ParentID))
				continue
			}
			parentID = sql.NullInt64{Int64: newParent, Valid: true}
		}

		groupKey := parentID.Int64
		if usedSlugs[groupKey] == nil {
			usedSlugs[groupKey] = make(map[string]bool)
		}
		slug := uniqueSlug(usedSlugs[groupKey], util.Slugify(e.Name))
		usedSlugs[groupKey][slug] = true

		item, err := imp.queries.CreateMenuItem(ctx, store.CreateMenuItemParams{
			Title:       e.Name,
			Slug:        slug,
			ParentID:    parentID,
			SortOrder:   sortOrders[groupKey],
			IsActive:    true,
			Hidden:      !e.Visible,
			DisplayMode: model.DisplayModeList,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("menu entry %d (%s): %v", e.ID, e.Name, err))
			continue
		}
		sortOrders[groupKey]++
		menuIDs[e.ID] = item.ID
		result.MenuItems++
	}

	logger.Info("menu imported", "count", result.MenuItems)
	return menuIDs, nil
}

// importArticles copies articles, attaching them to their imported menu
// items. Articles whose menu entry was not imported come in detached.
func (imp *Importer) importArticles(ctx context.Context, src Source, result *Result, menuIDs map[int64]int64, logger *slog.Logger) error {
	articles, err := src.Articles()
	if err != nil {
		return fmt.Errorf("reading legacy articles: %w", err)
	}

	usedSlugs := make(map[string]bool)
	now := time.Now()

	for _, a := range articles {
		var menuItemID sql.NullInt64
		if newID, ok := menuIDs[a.MenuID]; ok {
			menuItemID = sql.NullInt64{Int64: newID, Valid: true}
		}

		slug := uniqueSlug(usedSlugs, util.Slugify(a.Title))
		usedSlugs[slug] = true

		createdAt := now
		if a.Created.Valid {
			createdAt = a.Created.Time
		}

		article, err := imp.queries.CreateArticle(ctx, store.CreateArticleParams{
			Title:      a.Title,
			Slug:       slug,
			Content:    a.Content,
			Status:     model.ArticleStatusPublished,
			MenuItemID: menuItemID,
			CreatedAt:  createdAt,
			UpdatedAt:  now,
		})
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("article %d (%s): %v", a.ID, a.Title, err))
			continue
		}

		if _, err := imp.queries.PublishArticle(ctx, store.PublishArticleParams{
			PublishedAt: sql.NullTime{Time: createdAt, Valid: true},
			UpdatedAt:   now,
			ID:          article.ID,
		}); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("article %d (%s): setting publication time: %v", a.ID, a.Title, err))
		}
		result.Articles++
	}

	logger.Info("articles imported", "count", result.Articles)
	return nil
}

// importSettings copies the known contact and registry settings.
func (imp *Importer) importSettings(ctx context.Context, src Source, result *Result) error {
	settings, err := src.Settings()
	if err != nil {
		return fmt.Errorf("reading legacy settings: %w", err)
	}

	now := time.Now()
	for legacyKey, value := range settings {
		key, ok := settingKeyMap[legacyKey]
		if !ok || value == "" {
			result.Skipped++
			continue
		}
		if _, err := imp.queries.UpsertSetting(ctx, store.UpsertSettingParams{
			Key:       key,
			Value:     value,
			Type:      model.SettingTypeText,
			UpdatedAt: now,
		}); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("setting %s: %v", legacyKey, err))
			continue
		}
		result.Settings++
	}
	return nil
}

// uniqueSlug returns base, or base with a numeric suffix when base is
// already taken in the group.
func uniqueSlug(used map[string]bool, base string) string {
	if base == "" {
		base = "pozycja"
	}
	if !used[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}
