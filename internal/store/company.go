// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bizdir/internal/models"
)

// CompanyStore manages company listings in the database.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore returns a new CompanyStore.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

const companyColumns = `id, business_name, owner_name, office_address, business_address,
	gst_no, category, category_id, state, contact_number, whatsapp_number,
	email, website, capacity, description, uploader_mobile, images,
	is_premium, premium_start, premium_end, created_at, updated_at`

// scanCompany scans a row into a Company struct, decoding the images JSON.
func scanCompany(scanner interface{ Scan(...any) error }) (*models.Company, error) {
	var c models.Company
	var images []byte
	err := scanner.Scan(
		&c.ID, &c.BusinessName, &c.OwnerName, &c.OfficeAddress, &c.BusinessAddress,
		&c.GSTNo, &c.Category, &c.CategoryID, &c.State, &c.ContactNumber, &c.WhatsappNumber,
		&c.Email, &c.Website, &c.Capacity, &c.Description, &c.UploaderMobile, &images,
		&c.IsPremium, &c.PremiumStart, &c.PremiumEnd, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &c.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &c, nil
}

func imagesJSON(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

// Create inserts a new company listing and returns the stored row.
func (s *CompanyStore) Create(c *models.Company) (*models.Company, error) {
	images, err := imagesJSON(c.Images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO companies (business_name, owner_name, office_address, business_address,
			gst_no, category, category_id, state, contact_number, whatsapp_number,
			email, website, capacity, description, uploader_mobile, images,
			is_premium, premium_start, premium_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING `+companyColumns,
		c.BusinessName, c.OwnerName, c.OfficeAddress, c.BusinessAddress,
		c.GSTNo, c.Category, c.CategoryID, c.State, c.ContactNumber, c.WhatsappNumber,
		c.Email, c.Website, c.Capacity, c.Description, c.UploaderMobile, images,
		c.IsPremium, c.PremiumStart, c.PremiumEnd,
	)
	created, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}

// BulkCreate inserts companies in a single transaction. Either every row
// is stored or none is. Returns the number of rows inserted.
func (s *CompanyStore) BulkCreate(companies []models.Company) (int, error) {
	if len(companies) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO companies (business_name, owner_name, office_address, business_address,
			gst_no, category, category_id, state, contact_number, whatsapp_number,
			email, website, capacity, description, uploader_mobile, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`)
	if err != nil {
		return 0, fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range companies {
		images, err := imagesJSON(c.Images)
		if err != nil {
			return 0, fmt.Errorf("encode images for row %d: %w", i+1, err)
		}
		if _, err := stmt.Exec(
			c.BusinessName, c.OwnerName, c.OfficeAddress, c.BusinessAddress,
			c.GSTNo, c.Category, c.CategoryID, c.State, c.ContactNumber, c.WhatsappNumber,
			c.Email, c.Website, c.Capacity, c.Description, c.UploaderMobile, images,
		); err != nil {
			return 0, fmt.Errorf("insert company %q: %w", c.BusinessName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk insert: %w", err)
	}
	return len(companies), nil
}

// FindByID retrieves a company by ID. Returns nil if not found.
func (s *CompanyStore) FindByID(id int64) (*models.Company, error) {
	row := s.db.QueryRow(`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find company by id: %w", err)
	}
	return c, nil
}

// premiumOrder lists active premium listings first, those expiring
// soonest at the top, then the rest newest first.
const premiumOrder = `is_premium DESC, premium_end ASC NULLS LAST, id DESC`

// Search returns companies matching the query across name, owner,
// category, state, contact, description and GST number. An empty query
// returns all companies. Premium listings sort first.
func (s *CompanyStore) Search(q string) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	var args []any
	if strings.TrimSpace(q) != "" {
		query += `
		WHERE business_name ILIKE $1 OR owner_name ILIKE $1 OR category ILIKE $1
			OR state ILIKE $1 OR contact_number ILIKE $1 OR description ILIKE $1
			OR gst_no ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(q)+"%")
	}
	query += ` ORDER BY ` + premiumOrder

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()
	return collectCompanies(rows)
}

// List returns a page of companies, optionally filtered by category,
// along with the total number of matching rows. Premium listings sort first.
func (s *CompanyStore) List(categoryID *int64, page, pageSize int) ([]models.Company, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	where := ""
	args := []any{}
	if categoryID != nil {
		where = ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM companies`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM companies%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		companyColumns, where, premiumOrder, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	items, err := collectCompanies(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collectCompanies(rows *sql.Rows) ([]models.Company, error) {
	var items []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// CompanyUpdate carries the fields an admin may change on a listing.
// Nil fields are left untouched.
type CompanyUpdate struct {
	BusinessName    *string
	OwnerName       *string
	OfficeAddress   *string
	BusinessAddress *string
	GSTNo           *string
	Category        *string
	CategoryID      *int64
	State           *string
	ContactNumber   *string
	WhatsappNumber  *string
	Email           *string
	Website         *string
	Capacity        *string
	Description     *string
	UploaderMobile  *string
	Images          *[]string
}

// Update applies the non-nil fields of upd to a company and returns the
// updated row. Returns nil if the company does not exist.
func (s *CompanyStore) Update(id int64, upd CompanyUpdate) (*models.Company, error) {
	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.BusinessName != nil {
		set("business_name", *upd.BusinessName)
	}
	if upd.OwnerName != nil {
		set("owner_name", *upd.OwnerName)
	}
	if upd.OfficeAddress != nil {
		set("office_address", *upd.OfficeAddress)
	}
	if upd.BusinessAddress != nil {
		set("business_address", *upd.BusinessAddress)
	}
	if upd.GSTNo != nil {
		set("gst_no", *upd.GSTNo)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.CategoryID != nil {
		set("category_id", *upd.CategoryID)
	}
	if upd.State != nil {
		set("state", *upd.State)
	}
	if upd.ContactNumber != nil {
		set("contact_number", *upd.ContactNumber)
	}
	if upd.WhatsappNumber != nil {
		set("whatsapp_number", *upd.WhatsappNumber)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.Website != nil {
		set("website", *upd.Website)
	}
	if upd.Capacity != nil {
		set("capacity", *upd.Capacity)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.UploaderMobile != nil {
		set("uploader_mobile", *upd.UploaderMobile)
	}
	if upd.Images != nil {
		images, err := imagesJSON(*upd.Images)
		if err != nil {
			return nil, fmt.Errorf("encode images: %w", err)
		}
		set("images", images)
	}

	if len(sets) == 0 {
		return s.FindByID(id)
	}
	set("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE companies SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), companyColumns)

	row := s.db.QueryRow(query, args...)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return c, nil
}

// SetPremium updates the premium flag and window for a company and
// returns the updated row. Returns nil if the company does not exist.
func (s *CompanyStore) SetPremium(id int64, active bool, start, end *time.Time) (*models.Company, error) {
	row := s.db.QueryRow(`
		UPDATE companies
		SET is_premium = $1, premium_start = $2, premium_end = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+companyColumns, active, start, end, id)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set premium: %w", err)
	}
	return c, nil
}

// Delete removes a company by ID. Returns false if no row was deleted.
func (s *CompanyStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ExportCompany is a company joined with its resolved category name,
// as written to export files.
type ExportCompany struct {
	models.Company
	CategoryName string
}

// ListForExport returns companies in insertion order, optionally
// filtered by category, with the category name resolved for each row.
func (s *CompanyStore) ListForExport(categoryID *int64) ([]ExportCompany, error) {
	query := `
		SELECT co.id, co.business_name, co.owner_name, co.office_address, co.business_address,
			co.gst_no, co.category, co.category_id, co.state, co.contact_number, co.whatsapp_number,
			co.email, co.website, co.capacity, co.description, co.uploader_mobile, co.images,
			co.is_premium, co.premium_start, co.premium_end, co.created_at, co.updated_at,
			COALESCE(ca.name, '') AS category_name
		FROM companies co
		LEFT JOIN categories ca ON ca.id = co.category_id`
	var args []any
	if categoryID != nil {
		query += ` WHERE co.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY co.id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies for export: %w", err)
	}
	defer rows.Close()

	var items []ExportCompany
	for rows.Next() {
		var e ExportCompany
		var images []byte
		err := rows.Scan(
			&e.ID, &e.BusinessName, &e.OwnerName, &e.OfficeAddress, &e.BusinessAddress,
			&e.GSTNo, &e.Category, &e.CategoryID, &e.State, &e.ContactNumber, &e.WhatsappNumber,
			&e.Email, &e.Website, &e.Capacity, &e.Description, &e.UploaderMobile, &images,
			&e.IsPremium, &e.PremiumStart, &e.PremiumEnd, &e.CreatedAt, &e.UpdatedAt,
			&e.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		if err := json.Unmarshal(images, &e.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
