// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds security-related HTTP headers to every response.
// The API serves user-uploaded images from /uploads, so MIME-sniffing
// protection matters here, not just on the JSON endpoints.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Never let the browser second-guess the Content-Type of an
		// uploaded file.
		h.Set("X-Content-Type-Options", "nosniff")

		// The API renders no pages of its own; nothing should frame it.
		h.Set("X-Frame-Options", "DENY")

		// Keep admin URLs out of Referer headers sent to other origins.
		h.Set("Referrer-Policy", "no-referrer")

		next.ServeHTTP(w, r)
	})
}
