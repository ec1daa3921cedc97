// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(42, "admin", "test-secret", 8*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := VerifyToken(token, "test-secret")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.AdminID != 42 {
		t.Errorf("adminId: got %d, want 42", claims.AdminID)
	}
	if claims.Username != "admin" {
		t.Errorf("username: got %q, want %q", claims.Username, "admin")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "admin", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := VerifyToken(token, "wrong-secret"); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken(1, "admin", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := VerifyToken(token, "test-secret"); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not-a-token", "test-secret"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}
