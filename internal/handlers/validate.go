package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Submission errors surfaced to clients verbatim as 400 messages.
var (
	errBadForm       = errors.New("invalid form data")
	errBadCategoryID = errors.New("categoryId must be a number")
	errTooManyImages = fmt.Errorf("at most %d images allowed", maxImageCount)
	errImageTooLarge = errors.New("image exceeds the 5 MB limit")
	errBadImageType  = errors.New("images must be jpg, png, gif or webp")
	errImageSave     = errors.New("could not store image")
)

// Validation limits for listing fields.
const (
	maxNameLen        = 300
	maxShortFieldLen  = 300
	maxDescriptionLen = 5_000
	maxImageCount     = 10
	maxImageSize      = 5 << 20 // 5 MiB per image
)

// validateCompany checks the required listing fields and returns the
// first error found as a user-facing message, or "".
func validateCompany(businessName, state string) string {
	if strings.TrimSpace(businessName) == "" || strings.TrimSpace(state) == "" {
		return "businessName & state are required"
	}
	if utf8.RuneCountInString(businessName) > maxNameLen {
		return "businessName is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(state) > maxShortFieldLen {
		return "state is too long (max 300 characters)"
	}
	return ""
}

// validatePremiumWindow checks a premium date range.
func validatePremiumWindow(start, end time.Time, now time.Time) string {
	if !end.After(start) {
		return "premium end must be after start"
	}
	if !end.After(now) {
		return "premium end must be in the future"
	}
	return ""
}

// imageExtAllowed reports whether an uploaded filename has an accepted
// image extension.
func imageExtAllowed(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
