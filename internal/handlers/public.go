// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"bizdir/internal/cache"
	"bizdir/internal/httpx"
	"bizdir/internal/models"
	"bizdir/internal/storage"
	"bizdir/internal/store"
)

// Public serves the unauthenticated directory endpoints: listing
// submission, search and the category list.
type Public struct {
	companies  *store.CompanyStore
	categories *store.CategoryStore
	images     storage.ImageStore
	listings   *cache.ListingCache
}

// NewPublic creates the public handlers. listings may be nil when no
// Valkey is configured.
func NewPublic(companies *store.CompanyStore, categories *store.CategoryStore, images storage.ImageStore, listings *cache.ListingCache) *Public {
	return &Public{companies: companies, categories: categories, images: images, listings: listings}
}

// CreateCompany accepts a multipart submission with up to ten images,
// or a plain JSON body without images.
func (p *Public) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var draft models.Company
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		draft.Images = nil
	} else {
		draft, err = p.companyFromMultipart(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if msg := validateCompany(draft.BusinessName, draft.State); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	// A listing always ends up with a category: an explicit ID wins,
	// then a label match, then the Unknown fallback.
	if draft.CategoryID == nil {
		id, err := p.categories.ResolveLabel(draft.Category, false)
		if err != nil {
			httpx.WriteServerError(w, "category resolution failed", err)
			return
		}
		draft.CategoryID = &id
	}

	// Premium is admin-only; strip whatever the client sent.
	draft.IsPremium = false
	draft.PremiumStart, draft.PremiumEnd = nil, nil

	created, err := p.companies.Create(&draft)
	if err != nil {
		httpx.WriteServerError(w, "create company failed", err)
		return
	}

	p.listings.InvalidateAll(r.Context())
	slog.Info("company submitted", "id", created.ID, "businessName", created.BusinessName)
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// companyFromMultipart reads fields and image uploads from a
// multipart form.
func (p *Public) companyFromMultipart(r *http.Request) (models.Company, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return models.Company{}, errBadForm
	}

	draft := models.Company{
		BusinessName:    r.FormValue("businessName"),
		OwnerName:       r.FormValue("ownerName"),
		OfficeAddress:   r.FormValue("officeAddress"),
		BusinessAddress: r.FormValue("businessAddress"),
		GSTNo:           r.FormValue("gstNo"),
		Category:        r.FormValue("category"),
		State:           r.FormValue("state"),
		ContactNumber:   r.FormValue("contactNumber"),
		WhatsappNumber:  r.FormValue("whatsappNumber"),
		Email:           r.FormValue("email"),
		Website:         r.FormValue("website"),
		Capacity:        r.FormValue("capacity"),
		Description:     r.FormValue("description"),
		UploaderMobile:  r.FormValue("uploaderMobile"),
	}

	if v := r.FormValue("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.Company{}, errBadCategoryID
		}
		draft.CategoryID = &id
	}

	files := r.MultipartForm.File["images"]
	if len(files) > maxImageCount {
		return models.Company{}, errTooManyImages
	}
	for _, fh := range files {
		if fh.Size > maxImageSize {
			return models.Company{}, errImageTooLarge
		}
		ext := filepath.Ext(fh.Filename)
		if !imageExtAllowed(ext) {
			return models.Company{}, errBadImageType
		}

		f, err := fh.Open()
		if err != nil {
			return models.Company{}, errBadForm
		}
		url, err := p.images.Save(r.Context(), ext, fh.Header.Get("Content-Type"), f, fh.Size)
		f.Close()
		if err != nil {
			slog.Error("image save failed", "filename", fh.Filename, "error", err)
			return models.Company{}, errImageSave
		}
		draft.Images = append(draft.Images, url)
	}

	return draft, nil
}

// SearchCompanies returns listings matching ?q=, or all listings when
// the query is empty. Results are cached briefly.
func (p *Public) SearchCompanies(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	key := cache.SearchKey(q)
	if body, ok := p.listings.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	companies, err := p.companies.Search(q)
	if err != nil {
		httpx.WriteServerError(w, "company search failed", err)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}

	body, err := json.Marshal(companies)
	if err != nil {
		httpx.WriteServerError(w, "encode search results", err)
		return
	}
	p.listings.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// ListCategories returns all categories with company counts.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	key := cache.CategoriesKey()
	if body, ok := p.listings.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	categories, err := p.categories.List()
	if err != nil {
		httpx.WriteServerError(w, "list categories failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	body, err := json.Marshal(categories)
	if err != nil {
		httpx.WriteServerError(w, "encode categories", err)
		return
	}
	p.listings.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Health reports liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
