// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP endpoints of the directory:
// the public submission and search API, admin authentication, listing
// management, and bulk import/export.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"bizdir/internal/auth"
	"bizdir/internal/httpx"
	"bizdir/internal/middleware"
	"bizdir/internal/store"
)

// Auth handles admin login and two-factor management.
type Auth struct {
	admins    *store.AdminStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuth creates the auth handlers.
func NewAuth(admins *store.AdminStore, jwtSecret string, tokenTTL time.Duration) *Auth {
	return &Auth{admins: admins, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// Login verifies credentials (and the TOTP code when 2FA is enabled)
// and returns a bearer token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "username and password required")
		return
	}

	admin, err := a.admins.FindByUsername(req.Username)
	if err != nil {
		httpx.WriteServerError(w, "admin lookup failed", err)
		return
	}
	// Same response for unknown user and bad password.
	if admin == nil || !a.admins.CheckPassword(admin, req.Password) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if admin.RequiresTOTP() {
		if req.Code == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "2FA code required")
			return
		}
		if !totp.Validate(req.Code, *admin.TOTPSecret) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid 2FA code")
			return
		}
	}

	token, err := auth.GenerateToken(admin.ID, admin.Username, a.jwtSecret, a.tokenTTL)
	if err != nil {
		httpx.WriteServerError(w, "token generation failed", err)
		return
	}

	slog.Info("admin logged in", "username", admin.Username)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"token":       token,
		"username":    admin.Username,
		"totpEnabled": admin.TOTPEnabled,
	})
}

// TwoFASetup generates a fresh TOTP secret for the authenticated admin
// and returns it with a QR code for authenticator apps. The secret is
// inert until confirmed via TwoFAEnable.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	claims := middleware.AdminFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "BizDir",
		AccountName: claims.Username,
	})
	if err != nil {
		httpx.WriteServerError(w, "totp generate failed", err)
		return
	}

	if err := a.admins.SetTOTPSecret(claims.AdminID, key.Secret()); err != nil {
		httpx.WriteServerError(w, "save totp secret failed", err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		httpx.WriteServerError(w, "qr code generation failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"url":    key.URL(),
		"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAEnableRequest struct {
	Code string `json:"code"`
}

// TwoFAEnable confirms the pending TOTP secret with a valid code and
// turns on 2FA for the admin.
func (a *Auth) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	claims := middleware.AdminFromCtx(r.Context())

	var req twoFAEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, "code required")
		return
	}

	admin, err := a.admins.FindByID(claims.AdminID)
	if err != nil {
		httpx.WriteServerError(w, "admin lookup failed", err)
		return
	}
	if admin == nil || admin.TOTPSecret == nil {
		httpx.WriteError(w, http.StatusBadRequest, "run 2FA setup first")
		return
	}

	if !totp.Validate(req.Code, *admin.TOTPSecret) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid 2FA code")
		return
	}

	if err := a.admins.EnableTOTP(admin.ID); err != nil {
		httpx.WriteServerError(w, "enable totp failed", err)
		return
	}

	slog.Info("admin enabled 2fa", "username", admin.Username)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"totpEnabled": true})
}

// TwoFAReset clears another admin's 2FA, forcing re-setup on next
// login. Admins cannot reset their own.
func (a *Auth) TwoFAReset(w http.ResponseWriter, r *http.Request) {
	claims := middleware.AdminFromCtx(r.Context())

	targetID, ok := idParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid admin id")
		return
	}
	if targetID == claims.AdminID {
		httpx.WriteError(w, http.StatusForbidden, "cannot reset your own 2FA")
		return
	}

	target, err := a.admins.FindByID(targetID)
	if err != nil {
		httpx.WriteServerError(w, "admin lookup failed", err)
		return
	}
	if target == nil {
		httpx.WriteError(w, http.StatusNotFound, "admin not found")
		return
	}

	if err := a.admins.ResetTOTP(target.ID); err != nil {
		httpx.WriteServerError(w, "reset totp failed", err)
		return
	}

	slog.Info("admin 2fa reset", "username", target.Username, "by", claims.Username)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"totpEnabled": false})
}
