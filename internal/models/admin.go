package models

import "time"

// Admin represents a back-office user with authentication and 2FA fields.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// RequiresTOTP reports whether login must include a valid TOTP code.
func (a *Admin) RequiresTOTP() bool {
	return a.TOTPEnabled && a.TOTPSecret != nil
}
