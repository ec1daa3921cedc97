// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"bizdir/internal/models"
)

func TestNotificationStoreAppendAndList(t *testing.T) {
	db := testDB(t)
	s := NewNotificationStore(db)

	msg := "test: premium expired for Notification Append Co"
	t.Cleanup(func() { cleanNotifications(t, db, msg) })

	// A nil company ID is allowed, matching listings deleted after the event.
	if err := s.Append(nil, models.NotificationPremiumExpired, msg); err != nil {
		t.Fatalf("Append: %v", err)
	}

	items, err := s.ListRecent(200)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	found := false
	for _, n := range items {
		if n.Message == msg {
			found = true
			if n.CompanyID != nil {
				t.Error("expected nil company ID")
			}
			if n.Type != models.NotificationPremiumExpired {
				t.Errorf("type: got %q", n.Type)
			}
		}
	}
	if !found {
		t.Error("appended notification not returned by ListRecent")
	}
}

func TestNotificationStoreListNewestFirst(t *testing.T) {
	db := testDB(t)
	s := NewNotificationStore(db)

	first := "test: order first"
	second := "test: order second"
	t.Cleanup(func() { cleanNotifications(t, db, first, second) })

	if err := s.Append(nil, models.NotificationPremiumExpiring, first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(nil, models.NotificationPremiumExpiring, second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	items, err := s.ListRecent(200)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}

	firstPos, secondPos := -1, -1
	for i, n := range items {
		switch n.Message {
		case first:
			firstPos = i
		case second:
			secondPos = i
		}
	}
	if firstPos == -1 || secondPos == -1 {
		t.Fatal("expected both notifications in recent list")
	}
	if secondPos > firstPos {
		t.Errorf("newest should come first: second at %d, first at %d", secondPos, firstPos)
	}
}
