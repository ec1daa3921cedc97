// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// UnknownCategoryName is the reserved fallback category. It is created on
// demand and every company whose label cannot be resolved points at it.
const UnknownCategoryName = "Unknown"

// Category represents a named tag for company listings. Name is unique
// case-insensitively at the application level; Slug is derived from it.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// CompanyCount is a virtual field populated by store list methods.
	CompanyCount int `json:"company_count,omitempty"`
}

// IsUnknown reports whether this is the reserved fallback category.
func (c *Category) IsUnknown() bool {
	return strings.EqualFold(c.Name, UnknownCategoryName)
}
