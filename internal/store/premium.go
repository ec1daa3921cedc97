// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"bizdir/internal/models"
)

// PremiumStore runs the premium lifecycle sweeps. Each sweep does its
// status change and notification writes in a single transaction, so a
// listing is never flipped without its notification or vice versa.
type PremiumStore struct {
	db *sql.DB
}

// NewPremiumStore returns a new PremiumStore.
func NewPremiumStore(db *sql.DB) *PremiumStore {
	return &PremiumStore{db: db}
}

// ExpireDue demotes every premium listing whose window has ended at or
// before now and records a premium_expired notification for each.
// Returns the number of listings demoted.
func (s *PremiumStore) ExpireDue(now time.Time) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		UPDATE companies
		SET is_premium = FALSE, updated_at = $1
		WHERE is_premium AND premium_end IS NOT NULL AND premium_end <= $1
		RETURNING id, business_name
	`, now)
	if err != nil {
		return 0, fmt.Errorf("expire premiums: %w", err)
	}

	type expired struct {
		id   int64
		name string
	}
	var demoted []expired
	for rows.Next() {
		var e expired
		if err := rows.Scan(&e.id, &e.name); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan expired premium: %w", err)
		}
		demoted = append(demoted, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("expire premiums: %w", err)
	}
	rows.Close()

	for _, e := range demoted {
		if _, err := tx.Exec(`
			INSERT INTO notifications (company_id, type, message) VALUES ($1, $2, $3)
		`, e.id, models.NotificationPremiumExpired,
			fmt.Sprintf("Premium expired for %s", e.name)); err != nil {
			return 0, fmt.Errorf("record expiry for company %d: %w", e.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit expiry sweep: %w", err)
	}
	return len(demoted), nil
}

// WarnExpiring records a premium_expiring notification for every premium
// listing whose window ends within the warning window after now. No
// deduplication is done between sweeps. Returns the number of warnings written.
func (s *PremiumStore) WarnExpiring(now time.Time, window time.Duration) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id, business_name, premium_end
		FROM companies
		WHERE is_premium AND premium_end IS NOT NULL
			AND premium_end > $1 AND premium_end <= $2
	`, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("find expiring premiums: %w", err)
	}

	type expiring struct {
		id   int64
		name string
		end  time.Time
	}
	var soon []expiring
	for rows.Next() {
		var e expiring
		if err := rows.Scan(&e.id, &e.name, &e.end); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan expiring premium: %w", err)
		}
		soon = append(soon, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("find expiring premiums: %w", err)
	}
	rows.Close()

	for _, e := range soon {
		if _, err := tx.Exec(`
			INSERT INTO notifications (company_id, type, message) VALUES ($1, $2, $3)
		`, e.id, models.NotificationPremiumExpiring,
			fmt.Sprintf("Premium for %s expires on %s", e.name, e.end.Format(time.RFC3339))); err != nil {
			return 0, fmt.Errorf("record warning for company %d: %w", e.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit warning sweep: %w", err)
	}
	return len(soon), nil
}
