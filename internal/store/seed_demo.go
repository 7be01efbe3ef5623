// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"bip-go/internal/model"
)

// demoSection describes one top-level menu entry with its children.
type demoSection struct {
	title       string
	slug        string
	displayMode string
	children    []demoSection
}

// demoMenu is the section layout a typical municipal bulletin starts with.
var demoMenu = []demoSection{
	{title: "Aktualności", slug: "aktualnosci", displayMode: model.DisplayModeList},
	{title: "Urząd", slug: "urzad", displayMode: model.DisplayModeSingle, children: []demoSection{
		{title: "Dane podstawowe", slug: "dane-podstawowe", displayMode: model.DisplayModeSingle},
		{title: "Kierownictwo", slug: "kierownictwo", displayMode: model.DisplayModeSingle},
		{title: "Struktura organizacyjna", slug: "struktura-organizacyjna", displayMode: model.DisplayModeSingle},
	}},
	{title: "Prawo lokalne", slug: "prawo-lokalne", displayMode: model.DisplayModeList, children: []demoSection{
		{title: "Uchwały", slug: "uchwaly", displayMode: model.DisplayModeList},
		{title: "Zarządzenia", slug: "zarzadzenia", displayMode: model.DisplayModeList},
	}},
	{title: "Zamówienia publiczne", slug: "zamowienia-publiczne", displayMode: model.DisplayModeList, children: []demoSection{
		{title: "Przetargi", slug: "przetargi", displayMode: model.DisplayModeList},
		{title: "Zapytania ofertowe", slug: "zapytania-ofertowe", displayMode: model.DisplayModeList},
	}},
	{title: "Nabór pracowników", slug: "nabor-pracownikow", displayMode: model.DisplayModeList},
	{title: "Budżet i finanse", slug: "budzet-i-finanse", displayMode: model.DisplayModeList},
	{title: "Kontakt", slug: "kontakt", displayMode: model.DisplayModeSingle},
}

// SeedDemo populates an empty database with a demo menu structure and a
// few sample articles. Safe to call more than once: it skips when any
// menu item already exists.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	existing, err := queries.ListMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing menu: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("menu already populated, skipping demo seed")
		return nil
	}

	admin, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("looking up admin user: %w", err)
	}
	adminID := sql.NullInt64{Int64: admin.ID, Valid: true}

	now := time.Now()
	created := 0

	for i, section := range demoMenu {
		parent, err := queries.CreateMenuItem(ctx, CreateMenuItemParams{
			Title:       section.title,
			Slug:        section.slug,
			SortOrder:   int64(i),
			IsActive:    true,
			DisplayMode: section.displayMode,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("creating menu item %q: %w", section.slug, err)
		}
		created++

		for j, child := range section.children {
			if _, err := queries.CreateMenuItem(ctx, CreateMenuItemParams{
				Title:       child.title,
				Slug:        child.slug,
				ParentID:    sql.NullInt64{Int64: parent.ID, Valid: true},
				SortOrder:   int64(j),
				IsActive:    true,
				DisplayMode: child.displayMode,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return fmt.Errorf("creating menu item %q: %w", child.slug, err)
			}
			created++
		}

		// Give the news section one published article so the front page
		// is not empty on first run.
		if section.slug == "aktualnosci" {
			article, err := queries.CreateArticle(ctx, CreateArticleParams{
				Title:      "Witamy w Biuletynie Informacji Publicznej",
				Slug:       "witamy-w-biuletynie-informacji-publicznej",
				Content:    "<p>Serwis został uruchomiony. Treści będą publikowane na bieżąco.</p>",
				Status:     model.ArticleStatusPublished,
				MenuItemID: sql.NullInt64{Int64: parent.ID, Valid: true},
				CreatedBy:  adminID,
				UpdatedBy:  adminID,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("creating welcome article: %w", err)
			}
			if _, err := queries.PublishArticle(ctx, PublishArticleParams{
				PublishedBy: adminID,
				PublishedAt: sql.NullTime{Time: now, Valid: true},
				UpdatedAt:   now,
				ID:          article.ID,
			}); err != nil {
				return fmt.Errorf("publishing welcome article: %w", err)
			}
		}
	}

	slog.Info("seeded demo menu", "items", created)
	return nil
}
