// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxtConfig holds the fields of a security.txt file (RFC 9116).
// Public-sector sites are expected to publish a vulnerability contact.
type SecurityTxtConfig struct {
	// Contact is required: an email, URL or phone for reporting
	// vulnerabilities, e.g. "mailto:bok@example.gov.pl".
	Contact string

	// Expires marks when the file goes stale. Zero means one year from now.
	Expires time.Time

	// PreferredLanguages lists the languages of the security contact.
	PreferredLanguages string

	// Canonical is the canonical URL of this security.txt file.
	Canonical string
}

// GenerateSecurityTxt builds the security.txt content.
func GenerateSecurityTxt(cfg SecurityTxtConfig) string {
	var sb strings.Builder

	contact := cfg.Contact
	if contact != "" && !strings.Contains(contact, ":") {
		contact = "mailto:" + contact
	}
	sb.WriteString("Contact: ")
	sb.WriteString(contact)
	sb.WriteString("\n")

	expires := cfg.Expires
	if expires.IsZero() {
		expires = time.Now().AddDate(1, 0, 0)
	}
	sb.WriteString("Expires: ")
	sb.WriteString(expires.UTC().Format(time.RFC3339))
	sb.WriteString("\n")

	if cfg.PreferredLanguages != "" {
		sb.WriteString("Preferred-Languages: ")
		sb.WriteString(cfg.PreferredLanguages)
		sb.WriteString("\n")
	}
	if cfg.Canonical != "" {
		sb.WriteString("Canonical: ")
		sb.WriteString(cfg.Canonical)
		sb.WriteString("\n")
	}

	return sb.String()
}
