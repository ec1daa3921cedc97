// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bizdir/internal/models"
	"bizdir/internal/slug"
)

// ErrProtectedCategory is returned when deleting the Unknown fallback
// category, which must always exist.
var ErrProtectedCategory = errors.New("the Unknown category cannot be deleted")

// CategoryStore manages business categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by name, with company counts.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.created_at,
		       COUNT(co.id) AS company_count
		FROM categories c
		LEFT JOIN companies co ON co.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.CompanyCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, name, slug, created_at FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by name, matched case-insensitively.
// Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, name, slug, created_at FROM categories
		WHERE LOWER(name) = LOWER($1)
	`, strings.TrimSpace(name)).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// Create inserts a new category. The slug is derived from the name.
// Names are unique case-insensitively: creating "puf panels" when
// "PUF Panels" exists returns the existing row unchanged.
func (s *CategoryStore) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is empty")
	}

	_, err := s.db.Exec(`
		INSERT INTO categories (name, slug) VALUES ($1, $2)
		ON CONFLICT (LOWER(name)) DO NOTHING
	`, name, slug.Generate(name))
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return s.FindByName(name)
}

// EnsureUnknown guarantees the Unknown fallback category exists and
// returns its ID. Safe to call concurrently.
func (s *CategoryStore) EnsureUnknown() (int64, error) {
	_, err := s.db.Exec(`
		INSERT INTO categories (name, slug) VALUES ($1, $2)
		ON CONFLICT (LOWER(name)) DO NOTHING
	`, models.UnknownCategoryName, slug.Generate(models.UnknownCategoryName))
	if err != nil {
		return 0, fmt.Errorf("ensure unknown category: %w", err)
	}

	var id int64
	err = s.db.QueryRow(`
		SELECT id FROM categories WHERE LOWER(name) = LOWER($1)
	`, models.UnknownCategoryName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("find unknown category: %w", err)
	}
	return id, nil
}

// ResolveLabel maps a free-form category label to a category ID.
// Blank or unmatched labels fall back to the Unknown category unless
// autoCreate is set, in which case unmatched labels create a new category.
// The label itself is matched case-insensitively against existing names.
func (s *CategoryStore) ResolveLabel(label string, autoCreate bool) (int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return s.EnsureUnknown()
	}

	c, err := s.FindByName(label)
	if err != nil {
		return 0, err
	}
	if c != nil {
		return c.ID, nil
	}

	if autoCreate {
		created, err := s.Create(label)
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	}
	return s.EnsureUnknown()
}

// Delete removes a category and reassigns its companies to the Unknown
// category in the same transaction. The Unknown category itself cannot
// be deleted. Returns false if no category with the given ID exists.
func (s *CategoryStore) Delete(id int64) (bool, error) {
	c, err := s.FindByID(id)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, nil
	}
	if c.IsUnknown() {
		return false, ErrProtectedCategory
	}

	unknownID, err := s.EnsureUnknown()
	if err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE companies SET category_id = $1, updated_at = NOW() WHERE category_id = $2
	`, unknownID, id); err != nil {
		return false, fmt.Errorf("reassign companies: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete category: %w", err)
	}
	return n > 0, nil
}
