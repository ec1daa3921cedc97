// Package router sets up all HTTP routes and middleware chains for the
// business directory API. It organizes routes into public and admin
// groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizdir/internal/handlers"
	"bizdir/internal/middleware"
)

// Options carries the dependencies the router wires together.
type Options struct {
	Public       *handlers.Public
	Admin        *handlers.Admin
	Auth         *handlers.Auth
	ImportExport *handlers.ImportExport

	// JWTSecret signs and verifies admin bearer tokens.
	JWTSecret string

	// SubmitLimiter throttles public company submissions. Optional.
	SubmitLimiter *middleware.RateLimiter

	// UploadDir, when non-empty, is served at /uploads/ for locally
	// stored company images. Empty when S3 storage is configured.
	UploadDir string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no auth.
	r.Get("/health", opts.Public.Health)

	// Public API.
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", opts.Public.SearchCompanies)
		if opts.SubmitLimiter != nil {
			r.With(opts.SubmitLimiter.Middleware).Post("/", opts.Public.CreateCompany)
		} else {
			r.Post("/", opts.Public.CreateCompany)
		}
	})
	r.Get("/categories", opts.Public.ListCategories)

	// Locally stored company images.
	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	// Admin routes — token-protected except login.
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", opts.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(opts.JWTSecret))

			r.Post("/2fa/setup", opts.Auth.TwoFASetup)
			r.Post("/2fa/enable", opts.Auth.TwoFAEnable)
			r.Post("/admins/{id}/reset-2fa", opts.Auth.TwoFAReset)

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", opts.Admin.ListCompanies)
				r.Put("/{id}", opts.Admin.UpdateCompany)
				r.Delete("/{id}", opts.Admin.DeleteCompany)
				r.Post("/{id}/premium", opts.Admin.SetPremium)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", opts.Admin.CreateCategory)
				r.Delete("/{id}", opts.Admin.DeleteCategory)
			})

			r.Get("/notifications", opts.Admin.Notifications)

			r.Post("/import", opts.ImportExport.Import)
			r.Get("/export", opts.ImportExport.Export)
		})
	})

	return r
}
