package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"bip-go/internal/auth"
	"bip-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	// Hash the default password
	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// Create admin user
	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		FirstName:    "Administrator",
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)

	// Create default site settings
	defaults := []struct {
		key, value, typ string
	}{
		{model.SettingKeySiteTitle, "Biuletyn Informacji Publicznej", model.SettingTypeText},
		{model.SettingKeySiteURL, "", model.SettingTypeText},
		{model.SettingKeySiteSubtitle, "", model.SettingTypeText},
		{model.SettingKeySiteDescription, "", model.SettingTypeText},
		{model.SettingKeySEOKeywords, "", model.SettingTypeText},
		{model.SettingKeyContactAddress, "", model.SettingTypeText},
		{model.SettingKeyContactCity, "", model.SettingTypeText},
		{model.SettingKeyContactPhone, "", model.SettingTypeText},
		{model.SettingKeyContactEmail, "", model.SettingTypeText},
		{model.SettingKeyOfficeHours, "", model.SettingTypeText},
		{model.SettingKeyEPUAP, "", model.SettingTypeText},
		{model.SettingKeyNIP, "", model.SettingTypeText},
		{model.SettingKeyREGON, "", model.SettingTypeText},
		{model.SettingKeyBankAccount, "", model.SettingTypeText},
		{model.SettingKeyHomePage, "", model.SettingTypeText},
	}
	for _, d := range defaults {
		if _, err := queries.UpsertSetting(ctx, UpsertSettingParams{
			Key:       d.key,
			Value:     d.value,
			Type:      d.typ,
			UpdatedBy: sql.NullInt64{Int64: user.ID, Valid: true},
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("seeding setting %q: %w", d.key, err)
		}
	}

	return nil
}
