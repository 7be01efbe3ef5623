// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Setting types
const (
	SettingTypeText = "text"
	SettingTypeBool = "bool"
)

// Well-known setting keys. The contact and registry keys mirror what a
// public-sector bulletin is legally required to publish (ePUAP inbox,
// tax and statistical registry numbers, administrative division).
const (
	SettingKeySiteTitle       = "site_title"
	SettingKeySiteURL         = "site_url"
	SettingKeySiteSubtitle    = "site_subtitle"
	SettingKeySiteDescription = "site_description"
	SettingKeySEOKeywords     = "seo_keywords"
	SettingKeyContactAddress  = "contact_address"
	SettingKeyContactCity     = "contact_city"
	SettingKeyContactPhone    = "contact_phone"
	SettingKeyContactEmail    = "contact_email"
	SettingKeyOfficeHours     = "office_hours"
	SettingKeyEPUAP           = "epuap"
	SettingKeyNIP             = "nip"
	SettingKeyREGON           = "regon"
	SettingKeyBankAccount     = "bank_account"
	SettingKeyHomePage        = "home_page"
)

// Setting represents one site-wide key/value configuration entry.
type Setting struct {
	ID        int64
	Key       string
	Value     string
	Type      string
	UpdatedBy sql.NullInt64
	UpdatedAt time.Time
}
