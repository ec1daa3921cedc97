// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bizdir/internal/models"
)

// Policy controls what happens to category labels that match no
// existing category.
type Policy string

const (
	// PolicyFallbackUnknown files unmatched labels under the Unknown category.
	PolicyFallbackUnknown Policy = "fallback_unknown"
	// PolicyAutoCreate creates a new category from each unmatched label.
	PolicyAutoCreate Policy = "auto_create"
)

// ErrUnsupportedType rejects files that are neither CSV nor XLSX.
var ErrUnsupportedType = errors.New("unsupported file type, expected .csv or .xlsx")

// ErrNoValidRows means the file parsed fine but every data row was
// missing a business name or state.
var ErrNoValidRows = errors.New("no valid rows found, every row needs a business name and a state")

// MissingHeadersError reports a file whose header row lacks the
// required columns, listing the headers that were found.
type MissingHeadersError struct {
	Found []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("missing required columns, need a business/company name and a state/location column; found: %s",
		strings.Join(e.Found, ", "))
}

// CategoryResolver maps a free-form label to a category ID.
type CategoryResolver interface {
	ResolveLabel(label string, autoCreate bool) (int64, error)
}

// CompanyWriter persists a batch of companies atomically.
type CompanyWriter interface {
	BulkCreate(companies []models.Company) (int, error)
}

// Result summarizes one import run.
type Result struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Samples  []models.Company `json:"samples"`
}

const sampleCount = 3

// Importer runs the bulk import pipeline: parse, map headers,
// normalize rows, resolve categories, insert in one transaction.
type Importer struct {
	companies  CompanyWriter
	categories CategoryResolver
	policy     Policy
	maxRows    int
}

// New returns an Importer. maxRows caps the number of data rows
// accepted per file; zero or negative means no cap.
func New(companies CompanyWriter, categories CategoryResolver, policy Policy, maxRows int) *Importer {
	return &Importer{
		companies:  companies,
		categories: categories,
		policy:     policy,
		maxRows:    maxRows,
	}
}

// Import ingests an uploaded file. The extension of filename decides
// the parser. Either every valid row is persisted or none is.
func (im *Importer) Import(data []byte, filename string) (*Result, error) {
	var headers []string
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		headers, rows = parseCSV(data)
	case ".xlsx", ".xls":
		headers, rows, err = parseXLSX(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(filename))
	}

	hm := MapHeaders(headers)
	if !hm.HasRequired() {
		return nil, &MissingHeadersError{Found: nonEmpty(headers)}
	}

	if im.maxRows > 0 && len(rows) > im.maxRows {
		return nil, fmt.Errorf("file has %d rows, the limit is %d", len(rows), im.maxRows)
	}

	autoCreate := im.policy == PolicyAutoCreate
	// Sheets repeat the same labels a lot, resolve each label once.
	resolved := map[string]int64{}

	var batch []models.Company
	skipped := 0
	for _, cells := range rows {
		draft, ok := NormalizeRow(cells, hm)
		if !ok {
			skipped++
			continue
		}

		key := strings.ToLower(strings.TrimSpace(draft.Category))
		id, seen := resolved[key]
		if !seen {
			id, err = im.categories.ResolveLabel(draft.Category, autoCreate)
			if err != nil {
				return nil, fmt.Errorf("resolve category %q: %w", draft.Category, err)
			}
			resolved[key] = id
		}
		categoryID := id
		draft.CategoryID = &categoryID

		batch = append(batch, draft)
	}

	if len(batch) == 0 {
		return nil, ErrNoValidRows
	}

	imported, err := im.companies.BulkCreate(batch)
	if err != nil {
		return nil, fmt.Errorf("persist import: %w", err)
	}

	samples := batch
	if len(samples) > sampleCount {
		samples = samples[:sampleCount]
	}
	return &Result{Imported: imported, Skipped: skipped, Samples: samples}, nil
}

func nonEmpty(headers []string) []string {
	var out []string
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			out = append(out, strings.TrimSpace(h))
		}
	}
	return out
}
