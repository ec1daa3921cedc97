// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"bizdir/internal/models"
)

// NotificationStore manages the admin notification feed.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore returns a new NotificationStore.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Append records a new notification.
func (s *NotificationStore) Append(companyID *int64, typ models.NotificationType, message string) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (company_id, type, message) VALUES ($1, $2, $3)
	`, companyID, typ, message)
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// ListRecent returns the most recent notifications, newest first.
func (s *NotificationStore) ListRecent(limit int) ([]models.Notification, error) {
	if limit < 1 {
		limit = 200
	}
	rows, err := s.db.Query(`
		SELECT id, company_id, type, message, created_at
		FROM notifications ORDER BY created_at DESC, id DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var items []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Type, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
