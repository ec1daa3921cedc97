// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package importer

import (
	"strings"

	"bizdir/internal/models"
)

// NormalizeRow converts one raw data row plus the header map into a
// company draft. Values are trimmed and unmapped columns ignored. A row
// missing a business name or state is not an error: ok is false and the
// caller counts it as skipped. The category label is carried verbatim;
// resolution to an ID happens later in the pipeline. Imported rows
// never carry images.
func NormalizeRow(cells []string, hm HeaderMap) (draft models.Company, ok bool) {
	values := map[Field]string{}
	for i, raw := range cells {
		f, mapped := hm[i]
		if !mapped {
			continue
		}
		values[f] = strings.TrimSpace(raw)
	}

	if values[FieldBusinessName] == "" || values[FieldState] == "" {
		return models.Company{}, false
	}

	return models.Company{
		BusinessName:    values[FieldBusinessName],
		OwnerName:       values[FieldOwnerName],
		State:           values[FieldState],
		Category:        values[FieldCategory],
		ContactNumber:   values[FieldContactNumber],
		WhatsappNumber:  values[FieldWhatsappNumber],
		Email:           values[FieldEmail],
		Website:         values[FieldWebsite],
		GSTNo:           values[FieldGSTNo],
		Capacity:        values[FieldCapacity],
		Description:     values[FieldDescription],
		BusinessAddress: values[FieldAddress],
		Images:          []string{},
	}, true
}
