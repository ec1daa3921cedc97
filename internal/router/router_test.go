// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, the
// middleware chains, and that admin routes reject unauthenticated
// requests before reaching any handler.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bizdir/internal/auth"
	"bizdir/internal/handlers"
	"bizdir/internal/importer"
	"bizdir/internal/store"
)

const testSecret = "router-test-secret"

// newTestRouter wires the router with handlers over nil database
// handles. Only routes that never reach a store are exercised here;
// handler behavior is covered by the handlers package tests.
func newTestRouter(t *testing.T, uploadDir string) chi.Router {
	t.Helper()

	companies := store.NewCompanyStore(nil)
	categories := store.NewCategoryStore(nil)
	notifications := store.NewNotificationStore(nil)
	admins := store.NewAdminStore(nil)
	imp := importer.New(companies, categories, importer.PolicyFallbackUnknown, 0)

	return New(Options{
		Public:       handlers.NewPublic(companies, categories, nil, nil),
		Admin:        handlers.NewAdmin(companies, categories, notifications, nil, nil),
		Auth:         handlers.NewAuth(admins, testSecret, time.Hour),
		ImportExport: handlers.NewImportExport(imp, companies, nil),
		JWTSecret:    testSecret,
		UploadDir:    uploadDir,
	})
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, "")

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/admin/companies"},
		{"PUT", "/admin/companies/1"},
		{"DELETE", "/admin/companies/1"},
		{"POST", "/admin/companies/1/premium"},
		{"POST", "/admin/categories"},
		{"DELETE", "/admin/categories/1"},
		{"GET", "/admin/notifications"},
		{"POST", "/admin/import"},
		{"GET", "/admin/export"},
		{"POST", "/admin/2fa/setup"},
		{"POST", "/admin/2fa/enable"},
		{"POST", "/admin/admins/2/reset-2fa"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", w.Code)
			}
		})
	}
}

func TestAdminRoutesRejectBadToken(t *testing.T) {
	r := newTestRouter(t, "")

	expired, err := auth.GenerateToken(1, "admin", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	for _, token := range []string{"not-a-token", expired} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin/notifications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: got %d, want 401", token, w.Code)
		}
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	r := newTestRouter(t, "")

	// Malformed body: a 400, not a 401, proves no token gate in front.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/admin/login", nil))
	if w.Code == http.StatusUnauthorized {
		t.Errorf("login should not sit behind the token middleware, got %d", w.Code)
	}
}

func TestUploadsServedWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := newTestRouter(t, dir)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/pic.png", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}

	// Without a configured directory the route does not exist.
	r = newTestRouter(t, "")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/pic.png", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}
