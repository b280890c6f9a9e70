// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cosmeticdb/license-registry/cmd/license-api/handlers"
	"github.com/cosmeticdb/license-registry/cmd/license-api/middleware"
	"github.com/cosmeticdb/license-registry/internal/cache"
	"github.com/cosmeticdb/license-registry/internal/config"
	"github.com/cosmeticdb/license-registry/internal/observability"
	"github.com/cosmeticdb/license-registry/internal/storage"
)

// NewRouter creates the API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, repo *storage.LicenseRepository, cacheClient cache.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	licenseHandler := handlers.NewLicenseHandler(logger, repo, cacheClient, cfg.Cache.TTL)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"OK"}`))
		})

		r.Route("/licenses", func(r chi.Router) {
			r.Get("/search", licenseHandler.Search)
			r.Get("/", licenseHandler.List)
			r.Post("/", licenseHandler.Create)
			r.Get("/{id}", licenseHandler.Get)
		})
	})

	// Source documents, named <licenseNumber>.pdf by convention.
	fileServer := http.FileServer(http.Dir(cfg.Documents.Dir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	return r
}
