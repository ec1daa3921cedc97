// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"bizdir/internal/auth"
	"bizdir/internal/httpx"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// AdminKey is the context key for the authenticated admin's claims.
const AdminKey contextKey = "admin"

// RequireAdmin rejects requests without a valid bearer token signed
// with secret. The verified claims are stored in the request context
// for handlers via AdminFromCtx.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := auth.VerifyToken(token, secret)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromCtx returns the claims stored by RequireAdmin, or nil when
// the request was not authenticated.
func AdminFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(AdminKey).(*auth.Claims)
	return claims
}
