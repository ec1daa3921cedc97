package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"bizdir/internal/store"
)

// starterCategories are created on first boot so the public submission
// form has something to offer besides the Unknown fallback.
var starterCategories = []string{
	"Cold Rooms",
	"Insulation",
	"PUF Panels",
}

// Seed populates the database with initial development data: a default
// admin account, the Unknown fallback category, and a few starter
// categories. It is a no-op when an admin already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return fmt.Errorf("seed check admins: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	if _, err := store.NewAdminStore(db).Create("admin", "change_me_123"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	// The Unknown category must always exist; the resolver also creates it
	// on demand, but seeding it keeps fresh databases predictable.
	categories := store.NewCategoryStore(db)
	if _, err := categories.EnsureUnknown(); err != nil {
		return fmt.Errorf("seed unknown category: %w", err)
	}
	for _, name := range starterCategories {
		if _, err := categories.Create(name); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	slog.Info("database seeded with default admin account",
		"username", "admin",
		"password", "change_me_123",
	)

	return nil
}
