// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// NotificationType enumerates the premium lifecycle events.
type NotificationType string

const (
	NotificationPremiumExpired  NotificationType = "premium_expired"
	NotificationPremiumExpiring NotificationType = "premium_expiring"
)

// Notification is an immutable event record appended by the premium
// scheduler. CompanyID is nullable so the event survives deletion of the
// company it refers to.
type Notification struct {
	ID        int64            `json:"id"`
	CompanyID *int64           `json:"company_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
