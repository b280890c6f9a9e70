// Package handlers provides HTTP handlers for the license registry API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cosmeticdb/license-registry/internal/cache"
	"github.com/cosmeticdb/license-registry/internal/observability"
	"github.com/cosmeticdb/license-registry/internal/storage"
)

// LicenseHandler handles license lookup and creation requests.
type LicenseHandler struct {
	logger   *observability.Logger
	repo     *storage.LicenseRepository
	cache    cache.Client
	cacheTTL time.Duration
}

// NewLicenseHandler creates a new license handler.
func NewLicenseHandler(logger *observability.Logger, repo *storage.LicenseRepository, cacheClient cache.Client, cacheTTL time.Duration) *LicenseHandler {
	return &LicenseHandler{
		logger:   logger,
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

// CreateLicenseRequest is the POST /licenses request body.
type CreateLicenseRequest struct {
	LicenseNumber      string `json:"licenseNumber"`
	Number             string `json:"number,omitempty"`
	NotificationNumber string `json:"notificationNumber,omitempty"`
	ProductName        string `json:"productName"`
	Country            string `json:"country"`
	Manufacturer       string `json:"manufacturer"`
}

// ListResponse is the envelope for multi-record responses.
type ListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []*storage.License `json:"data"`
}

// RecordResponse is the envelope for single-record responses.
type RecordResponse struct {
	Success bool             `json:"success"`
	Data    *storage.License `json:"data"`
}

// Search handles GET /licenses/search?query=.
func (h *LicenseHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("query")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	cacheKey := "search:" + query
	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		}
	}

	licenses, err := h.repo.Search(ctx, query)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyQuery) {
			h.writeError(w, http.StatusBadRequest, "Search query is required")
			return
		}
		h.logger.Error().Err(err).Str("query", query).Msg("search failed")
		h.writeError(w, http.StatusInternalServerError, "Server error during search")
		return
	}

	resp := ListResponse{Success: true, Count: len(licenses), Data: licenses}
	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode search response")
		h.writeError(w, http.StatusInternalServerError, "Server error during search")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, body, h.cacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("cache search result")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// List handles GET /licenses.
func (h *LicenseHandler) List(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list licenses failed")
		h.writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse{Success: true, Count: len(licenses), Data: licenses})
}

// Get handles GET /licenses/{id}.
func (h *LicenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid license id")
		return
	}

	license, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "License not found")
			return
		}
		h.logger.Error().Err(err).Str("id", id.String()).Msg("get license failed")
		h.writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.writeJSON(w, http.StatusOK, RecordResponse{Success: true, Data: license})
}

// Create handles POST /licenses.
func (h *LicenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	license := &storage.License{
		LicenseNumber:      req.LicenseNumber,
		Number:             req.Number,
		NotificationNumber: req.NotificationNumber,
		ProductName:        req.ProductName,
		Country:            req.Country,
		Manufacturer:       req.Manufacturer,
	}

	if err := h.repo.Create(ctx, license); err != nil {
		var validationErr *storage.ValidationError
		switch {
		case errors.Is(err, storage.ErrDuplicateLicense):
			h.writeError(w, http.StatusBadRequest, "License number already exists")
		case errors.As(err, &validationErr):
			h.writeError(w, http.StatusBadRequest, validationErr.Error())
		default:
			h.logger.Error().Err(err).Msg("create license failed")
			h.writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	// New records change search results; drop cached ones.
	if h.cache != nil {
		if err := h.cache.DeleteByPrefix(ctx, "search:"); err != nil {
			h.logger.Warn().Err(err).Msg("invalidate search cache")
		}
	}

	h.writeJSON(w, http.StatusCreated, RecordResponse{Success: true, Data: license})
}

func (h *LicenseHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func (h *LicenseHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
