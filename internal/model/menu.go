// Package model defines domain models and types used throughout the
// application including MenuItem, Article, User, Event, and site settings.
package model

import (
	"database/sql"
	"time"
)

// Display modes for menu items.
const (
	DisplayModeList   = "list"   // item lists all articles assigned to it
	DisplayModeSingle = "single" // item shows exactly one article
)

// ValidDisplayModes contains all valid display mode values.
var ValidDisplayModes = []string{DisplayModeList, DisplayModeSingle}

// MenuItem represents one entry in the site navigation hierarchy.
// The hierarchy is exactly two levels deep: a top-level item has a null
// ParentID, a child references a top-level item. No grandchildren.
type MenuItem struct {
	ID          int64
	Title       string
	Slug        string
	ParentID    sql.NullInt64
	SortOrder   int64
	IsActive    bool
	Hidden      bool
	DisplayMode string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Visible reports the logical inverse of the persisted Hidden column.
func (m *MenuItem) Visible() bool {
	return !m.Hidden
}

// IsValidDisplayMode checks if a display mode value is valid.
func IsValidDisplayMode(mode string) bool {
	for _, m := range ValidDisplayModes {
		if m == mode {
			return true
		}
	}
	return false
}
