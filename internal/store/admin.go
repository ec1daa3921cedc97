// Package store provides database access methods for all directory
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bizdir/internal/models"
)

// AdminStore handles all admin account database operations.
type AdminStore struct {
	db *sql.DB
}

// NewAdminStore creates a new AdminStore with the given database connection.
func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db}
}

// FindByUsername retrieves an admin by username. Returns nil if not found.
func (s *AdminStore) FindByUsername(username string) (*models.Admin, error) {
	a := &models.Admin{}
	err := s.db.QueryRow(`
		SELECT id, username, password_hash, totp_secret, totp_enabled, created_at
		FROM admins WHERE username = $1
	`, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.TOTPSecret, &a.TOTPEnabled, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by username: %w", err)
	}
	return a, nil
}

// FindByID retrieves an admin by ID. Returns nil if not found.
func (s *AdminStore) FindByID(id int64) (*models.Admin, error) {
	a := &models.Admin{}
	err := s.db.QueryRow(`
		SELECT id, username, password_hash, totp_secret, totp_enabled, created_at
		FROM admins WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.TOTPSecret, &a.TOTPEnabled, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return a, nil
}

// Create inserts a new admin with a bcrypt-hashed password.
func (s *AdminStore) Create(username, password string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &models.Admin{}
	err = s.db.QueryRow(`
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, totp_secret, totp_enabled, created_at
	`, username, string(hash)).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.TOTPSecret, &a.TOTPEnabled, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return a, nil
}

// CheckPassword verifies a plaintext password against the admin's stored hash.
func (s *AdminStore) CheckPassword(admin *models.Admin, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}

// SetTOTPSecret saves the TOTP secret for an admin (during 2FA setup).
func (s *AdminStore) SetTOTPSecret(adminID int64, secret string) error {
	_, err := s.db.Exec(`
		UPDATE admins SET totp_secret = $1 WHERE id = $2
	`, secret, adminID)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for an admin (after successful code verification).
func (s *AdminStore) EnableTOTP(adminID int64) error {
	_, err := s.db.Exec(`
		UPDATE admins SET totp_enabled = TRUE WHERE id = $1
	`, adminID)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for an admin.
func (s *AdminStore) ResetTOTP(adminID int64) error {
	_, err := s.db.Exec(`
		UPDATE admins SET totp_secret = NULL, totp_enabled = FALSE WHERE id = $1
	`, adminID)
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}
