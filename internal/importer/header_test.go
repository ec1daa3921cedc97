// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package importer

import "testing"

func TestMapHeadersCommonVariations(t *testing.T) {
	hm := MapHeaders([]string{"Company Name", "Owner", "Location", "Mobile"})

	want := map[int]Field{
		0: FieldBusinessName,
		1: FieldOwnerName,
		2: FieldState,
		3: FieldContactNumber,
	}
	for i, f := range want {
		if hm[i] != f {
			t.Errorf("column %d: got %q, want %q", i, hm[i], f)
		}
	}
	if !hm.HasRequired() {
		t.Error("expected required fields to be covered")
	}
}

func TestMapHeadersTable(t *testing.T) {
	tests := []struct {
		header string
		want   Field
	}{
		{"Business Name", FieldBusinessName},
		{"COMPANY", FieldBusinessName},
		{"name", FieldBusinessName},
		{"Name", FieldBusinessName},
		{"Owner Name", FieldOwnerName},
		{"State", FieldState},
		{"Location", FieldState},
		{"Category", FieldCategory},
		{"Business Type", FieldBusinessName}, // "business" wins over "type"
		{"Type", FieldCategory},
		{"Contact Number", FieldContactNumber},
		{"Phone", FieldContactNumber},
		{"Mobile No", FieldContactNumber},
		{"WhatsApp", FieldWhatsappNumber},
		{"whatsappNumber", FieldWhatsappNumber},
		{"Email ID", FieldEmail},
		{"Website", FieldWebsite},
		{"Web", FieldWebsite},
		{"GST No", FieldGSTNo},
		{"Capacity (MT)", FieldCapacity},
		{"Description", FieldDescription},
		{"Details", FieldDescription},
		{"Address", FieldAddress},
		// First match wins: "business" beats "address".
		{"Business Address", FieldBusinessName},
	}

	for _, tt := range tests {
		hm := MapHeaders([]string{tt.header})
		if hm[0] != tt.want {
			t.Errorf("MapHeaders(%q): got %q, want %q", tt.header, hm[0], tt.want)
		}
	}
}

func TestMapHeadersDropsUnknown(t *testing.T) {
	hm := MapHeaders([]string{"Foo", "Bar", ""})
	if len(hm) != 0 {
		t.Errorf("expected no mapped columns, got %v", hm)
	}
	if hm.HasRequired() {
		t.Error("expected required fields missing")
	}
}

func TestMapHeadersPartialRequired(t *testing.T) {
	// A business name without a state column is not enough.
	hm := MapHeaders([]string{"Company Name", "Owner"})
	if hm.HasRequired() {
		t.Error("expected required fields missing without a state column")
	}
}
