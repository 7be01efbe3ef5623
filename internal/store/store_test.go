package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"bip-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "bip-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	// Open database
	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	// Run migrations
	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	// Return cleanup function
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Username:     "jkowalski",
		FirstName:    "Jan",
		LastName:     "Kowalski",
		Email:        "jan@example.com",
		PasswordHash: "hashed-password",
		Role:         model.RoleEditor,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Username != "jkowalski" {
		t.Errorf("Username = %q, want %q", user.Username, "jkowalski")
	}
	if user.Role != model.RoleEditor {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleEditor)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.GetUserByUsername(ctx, "nonexistent")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	created, err := q.CreateUser(ctx, CreateUserParams{
		Username:     "rehash",
		Email:        "rehash@example.com",
		PasswordHash: "old-hash",
		Role:         model.RoleEditor,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err = q.UpdateUserPassword(ctx, UpdateUserPasswordParams{
		PasswordHash: "new-hash",
		UpdatedAt:    time.Now(),
		ID:           created.ID,
	})
	if err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	found, err := q.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if found.PasswordHash != "new-hash" {
		t.Errorf("PasswordHash = %q, want %q", found.PasswordHash, "new-hash")
	}
}

// Menu item tests

func mustCreateMenuItem(t *testing.T, q *Queries, title, slug string, parentID sql.NullInt64, sortOrder int64) MenuItem {
	t.Helper()
	now := time.Now()
	item, err := q.CreateMenuItem(context.Background(), CreateMenuItemParams{
		Title:       title,
		Slug:        slug,
		ParentID:    parentID,
		SortOrder:   sortOrder,
		IsActive:    true,
		DisplayMode: model.DisplayModeList,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem(%q): %v", slug, err)
	}
	return item
}

func TestListMenuItemsOrdering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	// Insert out of order to verify sort
	b := mustCreateMenuItem(t, q, "B", "b", sql.NullInt64{}, 1)
	a := mustCreateMenuItem(t, q, "A", "a", sql.NullInt64{}, 0)
	c := mustCreateMenuItem(t, q, "C", "c", sql.NullInt64{}, 2)

	items, err := q.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	want := []int64{a.ID, b.ID, c.ID}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, id)
		}
	}
}

func TestListMenuItemsByParent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	parent := mustCreateMenuItem(t, q, "Urząd", "urzad", sql.NullInt64{}, 0)
	mustCreateMenuItem(t, q, "Kierownictwo", "kierownictwo", sql.NullInt64{Int64: parent.ID, Valid: true}, 0)
	mustCreateMenuItem(t, q, "Dane podstawowe", "dane-podstawowe", sql.NullInt64{Int64: parent.ID, Valid: true}, 1)

	children, err := q.ListMenuItemsByParent(ctx, sql.NullInt64{Int64: parent.ID, Valid: true})
	if err != nil {
		t.Fatalf("ListMenuItemsByParent: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	if children[0].Slug != "kierownictwo" {
		t.Errorf("children[0].Slug = %q, want %q", children[0].Slug, "kierownictwo")
	}

	// NULL parent returns only top-level items
	roots, err := q.ListMenuItemsByParent(ctx, sql.NullInt64{})
	if err != nil {
		t.Fatalf("ListMenuItemsByParent(NULL): %v", err)
	}
	if len(roots) != 1 {
		t.Errorf("len(roots) = %d, want 1", len(roots))
	}
}

func TestToggleFields(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	item := mustCreateMenuItem(t, q, "Przetargi", "przetargi", sql.NullInt64{}, 0)
	if !item.IsActive || item.Hidden {
		t.Fatalf("new item: IsActive = %v, Hidden = %v, want true, false", item.IsActive, item.Hidden)
	}

	err := q.UpdateMenuItemActive(ctx, UpdateMenuItemActiveParams{
		IsActive:  false,
		UpdatedAt: time.Now(),
		ID:        item.ID,
	})
	if err != nil {
		t.Fatalf("UpdateMenuItemActive: %v", err)
	}

	err = q.UpdateMenuItemHidden(ctx, UpdateMenuItemHiddenParams{
		Hidden:    true,
		UpdatedAt: time.Now(),
		ID:        item.ID,
	})
	if err != nil {
		t.Fatalf("UpdateMenuItemHidden: %v", err)
	}

	found, err := q.GetMenuItemByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetMenuItemByID: %v", err)
	}
	if found.IsActive {
		t.Error("IsActive = true after toggle off")
	}
	if !found.Hidden {
		t.Error("Hidden = false after toggle on")
	}
}

func TestCountMenuItemChildren(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	parent := mustCreateMenuItem(t, q, "Prawo lokalne", "prawo-lokalne", sql.NullInt64{}, 0)
	mustCreateMenuItem(t, q, "Uchwały", "uchwaly", sql.NullInt64{Int64: parent.ID, Valid: true}, 0)

	count, err := q.CountMenuItemChildren(ctx, sql.NullInt64{Int64: parent.ID, Valid: true})
	if err != nil {
		t.Fatalf("CountMenuItemChildren: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

// Article tests

func TestCreateArticleWithVersions(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Username:     "author",
		Email:        "author@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	authorID := sql.NullInt64{Int64: user.ID, Valid: true}

	article, err := q.CreateArticle(ctx, CreateArticleParams{
		Title:     "Ogłoszenie o naborze",
		Slug:      "ogloszenie-o-naborze",
		Content:   "<p>Treść ogłoszenia</p>",
		Status:    model.ArticleStatusDraft,
		CreatedBy: authorID,
		UpdatedBy: authorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if article.ID == 0 {
		t.Error("article.ID should not be 0")
	}
	if article.ViewCount != 0 {
		t.Errorf("ViewCount = %d, want 0", article.ViewCount)
	}

	// First version
	latest, err := q.GetLatestArticleVersionNumber(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetLatestArticleVersionNumber: %v", err)
	}
	if latest != 0 {
		t.Errorf("latest = %d, want 0 before any versions", latest)
	}

	_, err = q.CreateArticleVersion(ctx, CreateArticleVersionParams{
		ArticleID:     article.ID,
		VersionNumber: latest + 1,
		Title:         article.Title,
		Content:       article.Content,
		UpdatedBy:     authorID,
		CreatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateArticleVersion: %v", err)
	}

	versions, err := q.ListArticleVersions(ctx, article.ID)
	if err != nil {
		t.Fatalf("ListArticleVersions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("len(versions) = %d, want 1", len(versions))
	}
	if versions[0].VersionNumber != 1 {
		t.Errorf("VersionNumber = %d, want 1", versions[0].VersionNumber)
	}
}

func TestIncrementArticleViewCount(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	article, err := q.CreateArticle(ctx, CreateArticleParams{
		Title:     "Licznik",
		Slug:      "licznik",
		Status:    model.ArticleStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := q.IncrementArticleViewCount(ctx, article.ID); err != nil {
			t.Fatalf("IncrementArticleViewCount: %v", err)
		}
	}

	found, err := q.GetArticleByID(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetArticleByID: %v", err)
	}
	if found.ViewCount != 3 {
		t.Errorf("ViewCount = %d, want 3", found.ViewCount)
	}
}

func TestArticleViewDedup(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	article, err := q.CreateArticle(ctx, CreateArticleParams{
		Title:     "Dedup",
		Slug:      "dedup",
		Status:    model.ArticleStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	err = q.CreateArticleView(ctx, CreateArticleViewParams{
		ArticleID:  article.ID,
		ClientHash: "abc123",
		ViewedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateArticleView: %v", err)
	}

	count, err := q.CountArticleViews(ctx, CountArticleViewsParams{
		ArticleID:  article.ID,
		ClientHash: "abc123",
		ViewedAt:   now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CountArticleViews: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// Sweep removes old rows
	deleted, err := q.DeleteArticleViewsBefore(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteArticleViewsBefore: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

// Settings tests

func TestUpsertSetting(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	created, err := q.UpsertSetting(ctx, UpsertSettingParams{
		Key:       model.SettingKeySiteTitle,
		Value:     "BIP Gmina Testowa",
		Type:      model.SettingTypeText,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}
	if created.Value != "BIP Gmina Testowa" {
		t.Errorf("Value = %q, want %q", created.Value, "BIP Gmina Testowa")
	}

	// Second upsert updates in place
	updated, err := q.UpsertSetting(ctx, UpsertSettingParams{
		Key:       model.SettingKeySiteTitle,
		Value:     "BIP Miasto Testowe",
		Type:      model.SettingTypeText,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpsertSetting update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("ID = %d, want %d (update should not insert)", updated.ID, created.ID)
	}
	if updated.Value != "BIP Miasto Testowe" {
		t.Errorf("Value = %q, want %q", updated.Value, "BIP Miasto Testowe")
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	// First seed should create admin and settings
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	admin, err := q.GetUserByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", admin.Role)
	}

	title, err := q.GetSetting(ctx, model.SettingKeySiteTitle)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if title.Value == "" {
		t.Error("site_title setting should be seeded non-empty")
	}

	// Second seed should skip (no error, no duplicate)
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Second Seed: %v", err)
	}

	count, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (seed should skip if exists)", count)
	}
}

func TestSeedDemo(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	items, err := q.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("SeedDemo created no menu items")
	}

	// Idempotent
	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("Second SeedDemo: %v", err)
	}
	again, err := q.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(again) != len(items) {
		t.Errorf("item count changed from %d to %d on repeat seed", len(items), len(again))
	}
}
