// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"bizdir/internal/cache"
	"bizdir/internal/exporter"
	"bizdir/internal/httpx"
	"bizdir/internal/importer"
	"bizdir/internal/store"
)

// maxImportSize caps the uploaded spreadsheet at 20 MiB.
const maxImportSize = 20 << 20

// ImportExport serves the bulk import and export endpoints.
type ImportExport struct {
	importer  *importer.Importer
	companies *store.CompanyStore
	listings  *cache.ListingCache
}

// NewImportExport creates the import/export handlers.
func NewImportExport(imp *importer.Importer, companies *store.CompanyStore, listings *cache.ListingCache) *ImportExport {
	return &ImportExport{importer: imp, companies: companies, listings: listings}
}

// Import ingests a CSV or XLSX file from the "file" multipart field and
// responds with the import summary.
func (h *ImportExport) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportSize+1))
	if err != nil {
		httpx.WriteServerError(w, "read upload failed", err)
		return
	}
	if len(data) > maxImportSize {
		httpx.WriteError(w, http.StatusBadRequest, "file exceeds the 20 MB limit")
		return
	}

	result, err := h.importer.Import(data, header.Filename)
	if err != nil {
		var missing *importer.MissingHeadersError
		switch {
		case errors.As(err, &missing),
			errors.Is(err, importer.ErrUnsupportedType),
			errors.Is(err, importer.ErrNoValidRows):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			httpx.WriteServerError(w, "import failed", err)
		}
		return
	}

	h.listings.InvalidateAll(r.Context())
	slog.Info("import finished",
		"filename", header.Filename,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	httpx.WriteJSON(w, http.StatusOK, result)
}

// Export streams all listings as CSV or XLSX.
// Query: format (csv|xlsx, default xlsx), categoryId.
func (h *ImportExport) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "csv" && format != "xlsx" {
		httpx.WriteError(w, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	var categoryID *int64
	suffix := "all"
	if v := q.Get("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "categoryId must be a number")
			return
		}
		categoryID = &id
		suffix = v
	}

	rows, err := h.companies.ListForExport(categoryID)
	if err != nil {
		httpx.WriteServerError(w, "export query failed", err)
		return
	}
	if len(rows) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "no records")
		return
	}

	filename := fmt.Sprintf("companies_%s.%s", suffix, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		err = exporter.WriteCSV(w, rows)
	} else {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exporter.WriteXLSX(w, rows)
	}
	if err != nil {
		// Headers are already sent, all that is left is logging.
		slog.Error("export write failed", "format", format, "error", err)
	}
}
