// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Article statuses. Deleted articles are kept as rows (soft delete) so that
// version history and audit data survive removal from the public site.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusDeleted   = "deleted"
)

// Article represents a content entry, optionally attached to a menu item.
type Article struct {
	ID          int64
	Title       string
	Slug        string
	Content     string
	Excerpt     sql.NullString
	Status      string
	MenuItemID  sql.NullInt64
	ViewCount   int64
	CreatedBy   sql.NullInt64
	UpdatedBy   sql.NullInt64
	PublishedBy sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticleVersion is a snapshot of an article taken on every update.
type ArticleVersion struct {
	ID            int64
	ArticleID     int64
	VersionNumber int64
	Title         string
	Content       string
	Excerpt       sql.NullString
	UpdatedBy     sql.NullInt64
	ChangeSummary string
	CreatedAt     time.Time
}

// IsValidArticleStatus checks if a status value is valid.
func IsValidArticleStatus(status string) bool {
	switch status {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusDeleted:
		return true
	}
	return false
}
