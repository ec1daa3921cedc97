// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package exporter writes company listings to CSV and XLSX downloads.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"bizdir/internal/store"
)

// Headers is the column order of every export, stable so exported
// files re-import cleanly.
var Headers = []string{
	"id", "businessName", "ownerName", "category", "state",
	"contactNumber", "whatsappNumber", "email", "website", "gstNo",
	"capacity", "description", "is_premium", "premium_start",
	"premium_end", "created_at",
}

func rowValues(e store.ExportCompany) []string {
	category := e.CategoryName
	if category == "" {
		category = e.Category
	}
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.BusinessName,
		e.OwnerName,
		category,
		e.State,
		e.ContactNumber,
		e.WhatsappNumber,
		e.Email,
		e.Website,
		e.GSTNo,
		e.Capacity,
		e.Description,
		strconv.FormatBool(e.IsPremium),
		formatTime(e.PremiumStart),
		formatTime(e.PremiumEnd),
		e.CreatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// WriteCSV writes the rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []store.ExportCompany) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range rows {
		if err := cw.Write(rowValues(e)); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []store.ExportCompany) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Companies"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, Headers); err != nil {
		return err
	}
	for i, e := range rows {
		if err := setRow(f, sheet, i+2, rowValues(e)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write sheet row %d: %w", rowNum, err)
	}
	return nil
}
