// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bip-go/internal/model"
	"bip-go/internal/store"
	"bip-go/internal/testutil"
)

func TestSettingKeyMap(t *testing.T) {
	assert.Equal(t, model.SettingKeySiteTitle, settingKeyMap["title"])
	assert.Equal(t, model.SettingKeyContactEmail, settingKeyMap["email"])
	assert.Equal(t, model.SettingKeyNIP, settingKeyMap["nip"])
	assert.NotContains(t, settingKeyMap, "theme")
}

func TestImportEmptySource(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	imp := NewImporter(db, testutil.TestLogger())
	result, err := imp.Run(context.Background(), &fakeSource{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Zero(t, result.MenuItems)
	assert.Zero(t, result.Articles)
	assert.Zero(t, result.Settings)
	assert.Empty(t, result.Errors)
}

func TestImportOrphanChildReported(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	src := &fakeSource{
		menu: []MenuEntry{
			{ID: 5, ParentID: 4, Name: "Sierota", Position: 1, Visible: true},
		},
	}

	imp := NewImporter(db, testutil.TestLogger())
	result, err := imp.Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "parent 4 not imported")

	count, err := store.New(db).CountMenuItems(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
