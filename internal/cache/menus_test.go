package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bip-go/internal/model"
	"bip-go/internal/store"
	"bip-go/internal/testutil"
)

func seedMenuItem(t *testing.T, q *store.Queries, title, slug string, sortOrder int64) store.MenuItem {
	t.Helper()
	now := time.Now()
	item, err := q.CreateMenuItem(context.Background(), store.CreateMenuItemParams{
		Title:       title,
		Slug:        slug,
		SortOrder:   sortOrder,
		IsActive:    true,
		DisplayMode: model.DisplayModeList,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	return item
}

func TestMenuCacheLazyLoad(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	seedMenuItem(t, q, "Aktualności", "aktualnosci", 0)
	seedMenuItem(t, q, "Urząd", "urzad", 1)

	c := NewMenuCache(q, time.Minute)
	ctx := context.Background()

	items, err := c.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Slug != "aktualnosci" {
		t.Errorf("items[0].Slug = %q, want %q", items[0].Slug, "aktualnosci")
	}
}

func TestMenuCacheServesStaleUntilInvalidate(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	seedMenuItem(t, q, "Aktualności", "aktualnosci", 0)

	c := NewMenuCache(q, time.Minute)
	ctx := context.Background()

	if _, err := c.Items(ctx); err != nil {
		t.Fatalf("Items: %v", err)
	}

	// Write behind the cache's back
	seedMenuItem(t, q, "Kontakt", "kontakt", 1)

	items, err := c.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1 (stale within TTL)", len(items))
	}

	c.Invalidate()

	items, err = c.Items(ctx)
	if err != nil {
		t.Fatalf("Items after Invalidate: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d after Invalidate, want 2", len(items))
	}
}

func TestMenuCacheTTLExpiry(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	seedMenuItem(t, q, "Aktualności", "aktualnosci", 0)

	c := NewMenuCache(q, 10*time.Millisecond)
	ctx := context.Background()

	if _, err := c.Items(ctx); err != nil {
		t.Fatalf("Items: %v", err)
	}

	seedMenuItem(t, q, "Kontakt", "kontakt", 1)
	time.Sleep(20 * time.Millisecond)

	items, err := c.Items(ctx)
	if err != nil {
		t.Fatalf("Items after TTL: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d after TTL expiry, want 2", len(items))
	}
}

func TestSettingsCache(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	ctx := context.Background()

	_, err := q.UpsertSetting(ctx, store.UpsertSettingParams{
		Key:       model.SettingKeySiteTitle,
		Value:     "BIP",
		Type:      model.SettingTypeText,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}

	c := NewSettingsCache(q)

	got, err := c.Get(ctx, model.SettingKeySiteTitle)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "BIP" {
		t.Errorf("Get = %q, want %q", got, "BIP")
	}

	// Update behind the cache, stale until invalidated
	_, err = q.UpsertSetting(ctx, store.UpsertSettingParams{
		Key:       model.SettingKeySiteTitle,
		Value:     "BIP Gmina",
		Type:      model.SettingTypeText,
		UpdatedBy: sql.NullInt64{},
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}

	got, err = c.Get(ctx, model.SettingKeySiteTitle)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "BIP" {
		t.Errorf("Get = %q before Invalidate, want stale %q", got, "BIP")
	}

	c.Invalidate()

	got, err = c.Get(ctx, model.SettingKeySiteTitle)
	if err != nil {
		t.Fatalf("Get after Invalidate: %v", err)
	}
	if got != "BIP Gmina" {
		t.Errorf("Get = %q after Invalidate, want %q", got, "BIP Gmina")
	}
}

func TestSettingsCacheMissingKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	c := NewSettingsCache(store.New(db))

	got, err := c.Get(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Errorf("Get = %q for missing key, want empty", got)
	}
}
