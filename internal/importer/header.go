// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package importer ingests heterogeneous CSV and XLSX company sheets
// into canonical listings: fuzzy header classification, per-row
// normalization, category resolution and a single-transaction insert.
package importer

import "strings"

// Field names a spreadsheet column can be classified into.
type Field string

const (
	FieldBusinessName   Field = "businessName"
	FieldOwnerName      Field = "ownerName"
	FieldState          Field = "state"
	FieldCategory       Field = "category"
	FieldContactNumber  Field = "contactNumber"
	FieldWhatsappNumber Field = "whatsappNumber"
	FieldEmail          Field = "email"
	FieldWebsite        Field = "website"
	FieldGSTNo          Field = "gstNo"
	FieldCapacity       Field = "capacity"
	FieldDescription    Field = "description"
	FieldAddress        Field = "address"
)

// headerRule classifies a header by substring membership. Rules are
// tried in order and the first match wins, so "Business Address" lands
// on businessName, not address.
type headerRule struct {
	substrings []string
	field      Field
}

var headerRules = []headerRule{
	{[]string{"business", "company"}, FieldBusinessName},
	{[]string{"owner"}, FieldOwnerName},
	{[]string{"state", "location"}, FieldState},
	{[]string{"category", "type"}, FieldCategory},
	{[]string{"contact", "phone", "mobile"}, FieldContactNumber},
	{[]string{"whatsapp"}, FieldWhatsappNumber},
	{[]string{"email"}, FieldEmail},
	{[]string{"website", "web"}, FieldWebsite},
	{[]string{"gst"}, FieldGSTNo},
	{[]string{"capacity"}, FieldCapacity},
	{[]string{"description", "details"}, FieldDescription},
	{[]string{"address"}, FieldAddress},
}

// HeaderMap maps a zero-based column index to its canonical field.
type HeaderMap map[int]Field

// MapHeaders classifies each raw header into a canonical field.
// Headers matching no rule are dropped so their columns are ignored.
func MapHeaders(headers []string) HeaderMap {
	hm := HeaderMap{}
	for i, raw := range headers {
		lower := strings.ToLower(strings.TrimSpace(raw))
		if lower == "" {
			continue
		}
		if f, ok := classifyHeader(lower); ok {
			hm[i] = f
		}
	}
	return hm
}

func classifyHeader(lower string) (Field, bool) {
	// A bare "name" column means the business name.
	if lower == "name" {
		return FieldBusinessName, true
	}
	for _, rule := range headerRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.field, true
			}
		}
	}
	return "", false
}

// HasRequired reports whether the map covers both required fields.
func (hm HeaderMap) HasRequired() bool {
	var hasName, hasState bool
	for _, f := range hm {
		switch f {
		case FieldBusinessName:
			hasName = true
		case FieldState:
			hasState = true
		}
	}
	return hasName && hasState
}
