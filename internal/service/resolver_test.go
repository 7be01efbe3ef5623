// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"net/url"
	"testing"

	"bip-go/internal/model"
)

func topItem(id int64, title, slug string, active bool) model.MenuItem {
	return model.MenuItem{ID: id, Title: title, Slug: slug, IsActive: active}
}

func childItem(id, parentID int64, title, slug string, active bool) model.MenuItem {
	return model.MenuItem{
		ID:       id,
		Title:    title,
		Slug:     slug,
		ParentID: sql.NullInt64{Int64: parentID, Valid: true},
		IsActive: active,
	}
}

// testTree builds a fixed two-level tree:
//
//	aktualnosci (1)  -> uchwaly (10)
//	urzad (2)        -> kierownictwo (20), dane-podstawowe (21)
//	kontakt (3)
//	uchwaly (4)      -- top-level sharing a slug with child 10
//	archiwum (5)     -- inactive
func testTree() []MenuNode {
	return []MenuNode{
		{
			Item:     topItem(1, "Aktualności", "aktualnosci", true),
			Children: []model.MenuItem{childItem(10, 1, "Uchwały", "uchwaly", true)},
		},
		{
			Item: topItem(2, "Urząd", "urzad", true),
			Children: []model.MenuItem{
				childItem(20, 2, "Kierownictwo", "kierownictwo", true),
				childItem(21, 2, "Dane podstawowe", "dane-podstawowe", true),
			},
		},
		{Item: topItem(3, "Kontakt", "kontakt", true)},
		{Item: topItem(4, "Uchwały zbiorcze", "uchwaly", true)},
		{Item: topItem(5, "Archiwum", "archiwum", false)},
	}
}

func TestResolveHome(t *testing.T) {
	for _, path := range []string{"/", ""} {
		got := Resolve(path, url.Values{}, testTree())
		if got.Kind != ResolutionHome {
			t.Errorf("Resolve(%q).Kind = %v, want Home", path, got.Kind)
		}
	}
}

func TestResolveTopLevel(t *testing.T) {
	got := Resolve("/kontakt", url.Values{}, testTree())
	if got.Kind != ResolutionTopLevel {
		t.Fatalf("Kind = %v, want TopLevel", got.Kind)
	}
	if got.Parent.ID != 3 {
		t.Errorf("Parent.ID = %d, want 3", got.Parent.ID)
	}
}

func TestResolveTopLevelDisqualifiedByQuery(t *testing.T) {
	q := url.Values{"q": {"1"}}
	got := Resolve("/kontakt", q, testTree())
	if got.Kind != ResolutionNotFound {
		t.Errorf("Kind = %v, want NotFound when query params present", got.Kind)
	}
}

func TestResolveChild(t *testing.T) {
	got := Resolve("/urzad/kierownictwo", url.Values{}, testTree())
	if got.Kind != ResolutionChild {
		t.Fatalf("Kind = %v, want Child", got.Kind)
	}
	if got.Parent.ID != 2 || got.Child.ID != 20 {
		t.Errorf("Parent.ID, Child.ID = %d, %d, want 2, 20", got.Parent.ID, got.Child.ID)
	}
}

func TestResolveUnmatchedHierarchical(t *testing.T) {
	got := Resolve("/urzad/some-article-title", url.Values{}, testTree())
	if got.Kind != ResolutionUnmatchedHierarchical {
		t.Fatalf("Kind = %v, want UnmatchedHierarchical", got.Kind)
	}
	if got.Parent.ID != 2 {
		t.Errorf("Parent.ID = %d, want 2", got.Parent.ID)
	}
	if got.Rest != "some-article-title" {
		t.Errorf("Rest = %q, want %q", got.Rest, "some-article-title")
	}
}

func TestResolveUnmatchedHierarchicalDeepRest(t *testing.T) {
	// Only the first segment names the parent, remainder kept intact.
	got := Resolve("/urzad/a/b", url.Values{}, testTree())
	if got.Kind != ResolutionUnmatchedHierarchical {
		t.Fatalf("Kind = %v, want UnmatchedHierarchical", got.Kind)
	}
	if got.Rest != "a/b" {
		t.Errorf("Rest = %q, want %q", got.Rest, "a/b")
	}
}

func TestResolveUnknownParentFallsThrough(t *testing.T) {
	got := Resolve("/nieznany/kierownictwo", url.Values{}, testTree())
	if got.Kind != ResolutionNotFound {
		t.Fatalf("Kind = %v, want NotFound", got.Kind)
	}
	if got.Rest != "kierownictwo" {
		t.Errorf("Rest = %q, want last segment %q", got.Rest, "kierownictwo")
	}
}

func TestResolveMenuIDPattern(t *testing.T) {
	got := Resolve("/menu/2", url.Values{}, testTree())
	if got.Kind != ResolutionTopLevel || got.Parent.ID != 2 {
		t.Errorf("Resolve(/menu/2) = kind %v parent %+v, want TopLevel id 2", got.Kind, got.Parent)
	}

	got = Resolve("/menu/20", url.Values{}, testTree())
	if got.Kind != ResolutionChild {
		t.Fatalf("Resolve(/menu/20).Kind = %v, want Child", got.Kind)
	}
	if got.Parent.ID != 2 || got.Child.ID != 20 {
		t.Errorf("Parent.ID, Child.ID = %d, %d, want 2, 20", got.Parent.ID, got.Child.ID)
	}

	got = Resolve("/menu/999", url.Values{}, testTree())
	if got.Kind != ResolutionNotFound {
		t.Errorf("Resolve(/menu/999).Kind = %v, want NotFound", got.Kind)
	}
}

func TestResolveNewsCategoryFilter(t *testing.T) {
	q := url.Values{CategoryParam: {"uchwaly"}}
	got := Resolve("/"+NewsSlug, q, testTree())
	if got.Kind != ResolutionChild {
		t.Fatalf("Kind = %v, want Child", got.Kind)
	}
	if got.Parent.ID != 1 || got.Child.ID != 10 {
		t.Errorf("Parent.ID, Child.ID = %d, %d, want 1, 10", got.Parent.ID, got.Child.ID)
	}
}

func TestResolveNewsCategoryNoMatch(t *testing.T) {
	q := url.Values{CategoryParam: {"nieistnieje"}}
	got := Resolve("/"+NewsSlug, q, testTree())
	// Query params also disqualify the bare top-level match.
	if got.Kind != ResolutionNotFound {
		t.Errorf("Kind = %v, want NotFound", got.Kind)
	}
}

func TestResolveChildBeforeTopLevel(t *testing.T) {
	// Child 10 and top-level 4 share the slug "uchwaly"; the child wins.
	got := Resolve("/uchwaly", url.Values{}, testTree())
	if got.Kind != ResolutionChild {
		t.Fatalf("Kind = %v, want Child", got.Kind)
	}
	if got.Child.ID != 10 {
		t.Errorf("Child.ID = %d, want 10", got.Child.ID)
	}
}

func TestResolveInactiveExcluded(t *testing.T) {
	got := Resolve("/archiwum", url.Values{}, testTree())
	if got.Kind != ResolutionNotFound {
		t.Errorf("Kind = %v, want NotFound for inactive item", got.Kind)
	}
}

func TestResolveNotFound(t *testing.T) {
	got := Resolve("/zupelnie-nieznana", url.Values{}, testTree())
	if got.Kind != ResolutionNotFound {
		t.Fatalf("Kind = %v, want NotFound", got.Kind)
	}
	if got.Rest != "zupelnie-nieznana" {
		t.Errorf("Rest = %q, want %q", got.Rest, "zupelnie-nieznana")
	}
}
