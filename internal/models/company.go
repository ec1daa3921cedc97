// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Company represents a business listing in the directory.
// JSON field names mirror the public API payloads (camelCase).
type Company struct {
	ID              int64  `json:"id"`
	BusinessName    string `json:"businessName"`
	OwnerName       string `json:"ownerName"`
	OfficeAddress   string `json:"officeAddress"`
	BusinessAddress string `json:"businessAddress"`
	GSTNo           string `json:"gstNo"`

	// Category is the free-text label exactly as supplied by the submitter
	// or the imported file. It is kept verbatim for audit and export even
	// when resolution falls back to the Unknown category.
	Category   string `json:"category"`
	CategoryID *int64 `json:"categoryId"`

	State          string   `json:"state"`
	ContactNumber  string   `json:"contactNumber"`
	WhatsappNumber string   `json:"whatsappNumber"`
	Email          string   `json:"email"`
	Website        string   `json:"website"`
	Capacity       string   `json:"capacity"`
	Description    string   `json:"description"`
	UploaderMobile string   `json:"uploaderMobile"`
	Images         []string `json:"images"`

	IsPremium    bool       `json:"isPremium"`
	PremiumStart *time.Time `json:"premiumStart,omitempty"`
	PremiumEnd   *time.Time `json:"premiumEnd,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PremiumActive reports whether the listing's premium window covers the
// given instant. A company with IsPremium set but an elapsed window is
// still active in the database until the scheduler demotes it.
func (c *Company) PremiumActive(now time.Time) bool {
	return c.IsPremium && c.PremiumEnd != nil && c.PremiumEnd.After(now)
}
