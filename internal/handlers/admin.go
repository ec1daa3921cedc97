// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"bizdir/internal/cache"
	"bizdir/internal/httpx"
	"bizdir/internal/models"
	"bizdir/internal/storage"
	"bizdir/internal/store"
)

// Admin serves the authenticated management endpoints.
type Admin struct {
	companies     *store.CompanyStore
	categories    *store.CategoryStore
	notifications *store.NotificationStore
	images        storage.ImageStore
	listings      *cache.ListingCache
}

// NewAdmin creates the admin handlers.
func NewAdmin(companies *store.CompanyStore, categories *store.CategoryStore, notifications *store.NotificationStore, images storage.ImageStore, listings *cache.ListingCache) *Admin {
	return &Admin{companies: companies, categories: categories, notifications: notifications, images: images, listings: listings}
}

// removeImages deletes stored image files that no listing references
// anymore. Failures are logged, never surfaced: the listing change has
// already committed.
func (a *Admin) removeImages(ctx context.Context, urls []string) {
	if a.images == nil {
		return
	}
	for _, url := range urls {
		if err := a.images.Remove(ctx, url); err != nil {
			slog.Warn("remove image failed", "url", url, "error", err)
		}
	}
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ListCompanies returns a page of listings with the total count.
// Query: page (default 1), limit (default 25, max 100), categoryId.
func (a *Admin) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	pageSize := 25
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		pageSize = min(v, 100)
	}

	var categoryID *int64
	if v := q.Get("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "categoryId must be a number")
			return
		}
		categoryID = &id
	}

	companies, total, err := a.companies.List(categoryID, page, pageSize)
	if err != nil {
		httpx.WriteServerError(w, "list companies failed", err)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"companies": companies,
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
	})
}

// companyUpdateRequest mirrors the editable listing fields. Pointers
// distinguish "absent" from "set to empty".
type companyUpdateRequest struct {
	BusinessName    *string   `json:"businessName"`
	OwnerName       *string   `json:"ownerName"`
	OfficeAddress   *string   `json:"officeAddress"`
	BusinessAddress *string   `json:"businessAddress"`
	GSTNo           *string   `json:"gstNo"`
	Category        *string   `json:"category"`
	CategoryID      *int64    `json:"categoryId"`
	State           *string   `json:"state"`
	ContactNumber   *string   `json:"contactNumber"`
	WhatsappNumber  *string   `json:"whatsappNumber"`
	Email           *string   `json:"email"`
	Website         *string   `json:"website"`
	Capacity        *string   `json:"capacity"`
	Description     *string   `json:"description"`
	UploaderMobile  *string   `json:"uploaderMobile"`
	Images          *[]string `json:"images"`
}

func (req *companyUpdateRequest) empty() bool {
	return req.BusinessName == nil && req.OwnerName == nil && req.OfficeAddress == nil &&
		req.BusinessAddress == nil && req.GSTNo == nil && req.Category == nil &&
		req.CategoryID == nil && req.State == nil && req.ContactNumber == nil &&
		req.WhatsappNumber == nil && req.Email == nil && req.Website == nil &&
		req.Capacity == nil && req.Description == nil && req.UploaderMobile == nil &&
		req.Images == nil
}

// UpdateCompany applies a partial update to a listing. Premium state
// is not editable here, only through SetPremium.
func (a *Admin) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var req companyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.empty() {
		httpx.WriteError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.BusinessName != nil && strings.TrimSpace(*req.BusinessName) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "businessName cannot be blank")
		return
	}
	if req.State != nil && strings.TrimSpace(*req.State) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "state cannot be blank")
		return
	}

	// Replacing the image list orphans the files dropped from it;
	// capture the old list so they can be cleaned up after the update.
	var droppedImages []string
	if req.Images != nil {
		current, err := a.companies.FindByID(id)
		if err != nil {
			httpx.WriteServerError(w, "find company failed", err)
			return
		}
		if current == nil {
			httpx.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		kept := make(map[string]bool, len(*req.Images))
		for _, url := range *req.Images {
			kept[url] = true
		}
		for _, url := range current.Images {
			if !kept[url] {
				droppedImages = append(droppedImages, url)
			}
		}
	}

	// A new label without an explicit ID re-resolves the category.
	if req.Category != nil && req.CategoryID == nil {
		resolved, err := a.categories.ResolveLabel(*req.Category, false)
		if err != nil {
			httpx.WriteServerError(w, "category resolution failed", err)
			return
		}
		req.CategoryID = &resolved
	}

	updated, err := a.companies.Update(id, store.CompanyUpdate{
		BusinessName:    req.BusinessName,
		OwnerName:       req.OwnerName,
		OfficeAddress:   req.OfficeAddress,
		BusinessAddress: req.BusinessAddress,
		GSTNo:           req.GSTNo,
		Category:        req.Category,
		CategoryID:      req.CategoryID,
		State:           req.State,
		ContactNumber:   req.ContactNumber,
		WhatsappNumber:  req.WhatsappNumber,
		Email:           req.Email,
		Website:         req.Website,
		Capacity:        req.Capacity,
		Description:     req.Description,
		UploaderMobile:  req.UploaderMobile,
		Images:          req.Images,
	})
	if err != nil {
		httpx.WriteServerError(w, "update company failed", err)
		return
	}
	if updated == nil {
		httpx.WriteError(w, http.StatusNotFound, "company not found")
		return
	}

	a.removeImages(r.Context(), droppedImages)
	a.listings.InvalidateAll(r.Context())
	httpx.WriteJSON(w, http.StatusOK, updated)
}

// DeleteCompany removes a listing.
func (a *Admin) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	// Capture the image list before the row goes away.
	company, err := a.companies.FindByID(id)
	if err != nil {
		httpx.WriteServerError(w, "find company failed", err)
		return
	}
	if company == nil {
		httpx.WriteError(w, http.StatusNotFound, "company not found")
		return
	}

	deleted, err := a.companies.Delete(id)
	if err != nil {
		httpx.WriteServerError(w, "delete company failed", err)
		return
	}
	if !deleted {
		httpx.WriteError(w, http.StatusNotFound, "company not found")
		return
	}

	a.removeImages(r.Context(), company.Images)
	a.listings.InvalidateAll(r.Context())
	slog.Info("company deleted", "id", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type premiumRequest struct {
	IsPremium *bool      `json:"isPremium"`
	Start     *time.Time `json:"start"`
	End       *time.Time `json:"end"`
}

// SetPremium promotes a listing for a start/end window, or demotes it
// when isPremium is false. Promotion requires end after start and in
// the future.
func (a *Admin) SetPremium(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var req premiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Demotion path: explicit isPremium=false clears the window.
	if req.IsPremium != nil && !*req.IsPremium {
		updated, err := a.companies.SetPremium(id, false, nil, nil)
		if err != nil {
			httpx.WriteServerError(w, "clear premium failed", err)
			return
		}
		if updated == nil {
			httpx.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		a.listings.InvalidateAll(r.Context())
		httpx.WriteJSON(w, http.StatusOK, updated)
		return
	}

	if req.Start == nil || req.End == nil {
		httpx.WriteError(w, http.StatusBadRequest, "start and end required")
		return
	}
	if msg := validatePremiumWindow(*req.Start, *req.End, time.Now()); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := a.companies.SetPremium(id, true, req.Start, req.End)
	if err != nil {
		httpx.WriteServerError(w, "set premium failed", err)
		return
	}
	if updated == nil {
		httpx.WriteError(w, http.StatusNotFound, "company not found")
		return
	}

	a.listings.InvalidateAll(r.Context())
	slog.Info("premium set", "id", id, "end", req.End)
	httpx.WriteJSON(w, http.StatusOK, updated)
}

// Notifications returns the most recent 200 premium lifecycle events.
func (a *Admin) Notifications(w http.ResponseWriter, r *http.Request) {
	items, err := a.notifications.ListRecent(200)
	if err != nil {
		httpx.WriteServerError(w, "list notifications failed", err)
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

type categoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category by name.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "name required")
		return
	}

	category, err := a.categories.Create(req.Name)
	if err != nil {
		httpx.WriteServerError(w, "create category failed", err)
		return
	}

	a.listings.InvalidateAll(r.Context())
	httpx.WriteJSON(w, http.StatusCreated, category)
}

// DeleteCategory removes a category, moving its listings to Unknown.
// The Unknown category itself is protected.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	deleted, err := a.categories.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrProtectedCategory) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.WriteServerError(w, "delete category failed", err)
		return
	}
	if !deleted {
		httpx.WriteError(w, http.StatusNotFound, "category not found")
		return
	}

	a.listings.InvalidateAll(r.Context())
	slog.Info("category deleted", "id", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
