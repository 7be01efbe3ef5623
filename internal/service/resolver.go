// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"bip-go/internal/model"
)

// Slug of the news listing section and the query parameter used to
// filter it by category. Requests like /aktualnosci?kategoria=uchwaly
// resolve to the matching child of the news section.
const (
	NewsSlug      = "aktualnosci"
	CategoryParam = "kategoria"
)

var menuIDPattern = regexp.MustCompile(`^menu/(\d+)$`)

// ResolutionKind tags a ResolvedLocation variant.
type ResolutionKind int

const (
	// ResolutionHome is the site root.
	ResolutionHome ResolutionKind = iota
	// ResolutionTopLevel matched a top-level menu item.
	ResolutionTopLevel
	// ResolutionChild matched a child item under its parent.
	ResolutionChild
	// ResolutionUnmatchedHierarchical matched a top-level parent but no
	// child; the remainder is expected to be a direct article slug.
	ResolutionUnmatchedHierarchical
	// ResolutionNotFound matched nothing.
	ResolutionNotFound
)

// ResolvedLocation is the outcome of resolving a request path against
// the menu tree.
type ResolvedLocation struct {
	Kind   ResolutionKind
	Parent *model.MenuItem // set for TopLevel, Child and (when the parent exists) UnmatchedHierarchical
	Child  *model.MenuItem // set for Child
	Rest   string          // unmatched remainder, or the fallback segment for NotFound
}

// Resolve finds which menu node a request path refers to.
// Matching is case-sensitive and slugs are compared as-is; inactive
// items never resolve publicly. Priority order: home, hierarchical
// two-segment match, menu-ID pattern, news category filter, child slug,
// bare top-level slug (only without query parameters).
func Resolve(requestPath string, query url.Values, tree []MenuNode) ResolvedLocation {
	if requestPath == "/" || requestPath == "" {
		return ResolvedLocation{Kind: ResolutionHome}
	}

	path := strings.Trim(requestPath, "/")
	if path == "" {
		return ResolvedLocation{Kind: ResolutionHome}
	}

	// Two-segment pattern: only the first segment names the parent, the
	// remainder may itself contain slashes.
	if parentSlug, rest, ok := strings.Cut(path, "/"); ok {
		if parent := findTopLevel(tree, parentSlug); parent != nil {
			if child := findChild(parent, rest); child != nil {
				return childLocation(parent, child)
			}
			item := parent.Item
			return ResolvedLocation{
				Kind:   ResolutionUnmatchedHierarchical,
				Parent: &item,
				Rest:   rest,
			}
		}
		// Unknown parent: fall through to single-segment resolution
		// against the literal path.
	}

	// (a) Numeric menu-ID pattern /menu/{digits}, matching any node.
	if m := menuIDPattern.FindStringSubmatch(path); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		if loc, ok := findByID(tree, id); ok {
			return loc
		}
	}

	// (b) News listing filtered by category query parameter.
	if path == NewsSlug && query.Get(CategoryParam) != "" {
		if parent := findTopLevel(tree, NewsSlug); parent != nil {
			if child := findChild(parent, query.Get(CategoryParam)); child != nil {
				return childLocation(parent, child)
			}
		}
	}

	// (c) Child slugs take priority over top-level slugs for the same
	// literal path.
	for i := range tree {
		node := &tree[i]
		if !node.Item.IsActive {
			continue
		}
		if child := findChild(node, path); child != nil {
			return childLocation(node, child)
		}
	}

	// (d) Bare top-level match, only when no query parameters are present.
	if len(query) == 0 {
		if parent := findTopLevel(tree, path); parent != nil {
			item := parent.Item
			return ResolvedLocation{Kind: ResolutionTopLevel, Parent: &item}
		}
	}

	return ResolvedLocation{Kind: ResolutionNotFound, Rest: lastSegment(path)}
}

// findTopLevel returns the active top-level node with the given slug.
func findTopLevel(tree []MenuNode, slug string) *MenuNode {
	for i := range tree {
		if tree[i].Item.IsActive && tree[i].Item.Slug == slug {
			return &tree[i]
		}
	}
	return nil
}

// findChild returns the active child of node with the given slug.
func findChild(node *MenuNode, slug string) *model.MenuItem {
	for i := range node.Children {
		if node.Children[i].IsActive && node.Children[i].Slug == slug {
			return &node.Children[i]
		}
	}
	return nil
}

// findByID matches any node, top-level or child, by its numeric ID.
func findByID(tree []MenuNode, id int64) (ResolvedLocation, bool) {
	for i := range tree {
		node := &tree[i]
		if !node.Item.IsActive {
			continue
		}
		if node.Item.ID == id {
			item := node.Item
			return ResolvedLocation{Kind: ResolutionTopLevel, Parent: &item}, true
		}
		for j := range node.Children {
			if node.Children[j].IsActive && node.Children[j].ID == id {
				return childLocation(node, &node.Children[j]), true
			}
		}
	}
	return ResolvedLocation{}, false
}

func childLocation(parent *MenuNode, child *model.MenuItem) ResolvedLocation {
	item := parent.Item
	c := *child
	return ResolvedLocation{Kind: ResolutionChild, Parent: &item, Child: &c}
}

// lastSegment returns the last non-empty path segment.
func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
