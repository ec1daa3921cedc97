// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bizdir/internal/auth"
	"bizdir/internal/middleware"
	"bizdir/internal/store"
)

const testJWTSecret = "handler-test-secret"

func loginRequestBody(username, password, code string) *strings.Reader {
	body, _ := json.Marshal(map[string]string{
		"username": username, "password": password, "code": code,
	})
	return strings.NewReader(string(body))
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	admins := store.NewAdminStore(db)
	h := NewAuth(admins, testJWTSecret, 8*time.Hour)

	username := "test-login-admin"
	t.Cleanup(func() { cleanAdmins(t, db, username) })
	if _, err := admins.Create(username, "correct-password"); err != nil {
		t.Fatalf("Create admin: %v", err)
	}

	t.Run("valid credentials return a working token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", loginRequestBody(username, "correct-password", ""))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		claims, err := auth.VerifyToken(resp.Token, testJWTSecret)
		if err != nil {
			t.Fatalf("returned token does not verify: %v", err)
		}
		if claims.Username != username {
			t.Errorf("claims username: got %q", claims.Username)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", loginRequestBody(username, "wrong", ""))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})

	t.Run("unknown user gets the same response as wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", loginRequestBody("no-such-admin", "whatever", ""))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", loginRequestBody("", "", ""))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})
}

func TestLoginRequiresTOTPWhenEnabled(t *testing.T) {
	db := testDB(t)
	admins := store.NewAdminStore(db)
	h := NewAuth(admins, testJWTSecret, 8*time.Hour)

	username := "test-login-totp"
	t.Cleanup(func() { cleanAdmins(t, db, username) })

	admin, err := admins.Create(username, "correct-password")
	if err != nil {
		t.Fatalf("Create admin: %v", err)
	}
	if err := admins.SetTOTPSecret(admin.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := admins.EnableTOTP(admin.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	// Correct password, no code.
	req := httptest.NewRequest(http.MethodPost, "/admin/login", loginRequestBody(username, "correct-password", ""))
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing code: got %d, want 401", rr.Code)
	}

	// Correct password, bogus code.
	req = httptest.NewRequest(http.MethodPost, "/admin/login", loginRequestBody(username, "correct-password", "000000"))
	rr = httptest.NewRecorder()
	h.Login(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad code: got %d, want 401", rr.Code)
	}
}

func TestTwoFAReset(t *testing.T) {
	db := testDB(t)
	admins := store.NewAdminStore(db)
	h := NewAuth(admins, testJWTSecret, 8*time.Hour)

	actorName := "test-2fa-reset-actor"
	targetName := "test-2fa-reset-target"
	t.Cleanup(func() { cleanAdmins(t, db, actorName, targetName) })

	actor, err := admins.Create(actorName, "actor-password")
	if err != nil {
		t.Fatalf("Create actor: %v", err)
	}
	target, err := admins.Create(targetName, "target-password")
	if err != nil {
		t.Fatalf("Create target: %v", err)
	}
	if err := admins.SetTOTPSecret(target.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := admins.EnableTOTP(target.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	r := chi.NewRouter()
	r.With(middleware.RequireAdmin(testJWTSecret)).Post("/admin/admins/{id}/reset-2fa", h.TwoFAReset)

	token, err := auth.GenerateToken(actor.ID, actorName, testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	reset := func(id int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/admins/%d/reset-2fa", id), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	t.Run("clears the target's 2fa", func(t *testing.T) {
		rr := reset(target.ID)
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
		}
		got, err := admins.FindByID(target.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.TOTPEnabled || got.TOTPSecret != nil {
			t.Errorf("2fa not cleared: enabled=%v secret=%v", got.TOTPEnabled, got.TOTPSecret)
		}
	})

	t.Run("own account is refused", func(t *testing.T) {
		if rr := reset(actor.ID); rr.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rr.Code)
		}
	})

	t.Run("unknown admin is a 404", func(t *testing.T) {
		if rr := reset(99999999); rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})
}
