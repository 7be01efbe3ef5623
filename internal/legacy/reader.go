// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package legacy imports content from the previous bulletin, a PHP
// portal backed by MySQL.
package legacy

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MenuEntry is one row of the legacy menu table. The old portal kept
// the same two-level structure: parent_id 0 marks a top-level entry.
type MenuEntry struct {
	ID       int64
	ParentID int64
	Name     string
	Position int64
	Visible  bool
}

// Article is one row of the legacy articles table.
type Article struct {
	ID      int64
	MenuID  int64
	Title   string
	Content string
	Created sql.NullTime
}

// Reader reads data from the legacy portal's MySQL database.
type Reader struct {
	db *sql.DB
}

// NewReader opens a connection to the legacy database.
func NewReader(dsn string) (*Reader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to legacy database: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// MenuEntries returns all menu rows, parents before children, each
// group in its stored order.
func (r *Reader) MenuEntries() ([]MenuEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, parent_id, name, position, visible FROM menu ORDER BY parent_id, position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy menu: %w", err)
	}
	defer rows.Close()

	var entries []MenuEntry
	for rows.Next() {
		var e MenuEntry
		if err := rows.Scan(&e.ID, &e.ParentID, &e.Name, &e.Position, &e.Visible); err != nil {
			return nil, fmt.Errorf("scanning legacy menu row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Articles returns all article rows.
func (r *Reader) Articles() ([]Article, error) {
	rows, err := r.db.Query(
		`SELECT id, menu_id, title, content, created FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.MenuID, &a.Title, &a.Content, &a.Created); err != nil {
			return nil, fmt.Errorf("scanning legacy article row: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Settings returns the legacy key/value settings table.
func (r *Reader) Settings() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT name, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning legacy setting row: %w", err)
		}
		settings[name] = value
	}
	return settings, rows.Err()
}
