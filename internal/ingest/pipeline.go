// Package ingest provides the batch ingestion pipeline for license documents.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cosmeticdb/license-registry/internal/extract"
	"github.com/cosmeticdb/license-registry/internal/license"
	"github.com/cosmeticdb/license-registry/internal/observability"
	"github.com/cosmeticdb/license-registry/internal/storage"
)

// Store is the persistence behavior the pipeline depends on.
type Store interface {
	Upsert(ctx context.Context, licenseNumber string, fields storage.LicenseFields) (*storage.License, error)
}

// Stats summarizes a batch run.
type Stats struct {
	Scanned   int
	Succeeded int
	Failed    int
	Skipped   int
}

// Config holds pipeline settings.
type Config struct {
	// Extension of recognized documents, including the dot. Defaults to ".pdf".
	Extension string
	// Progress, if set, is called after each document with done and total counts.
	Progress func(done, total int)
}

// Pipeline ingests a directory of scanned license documents into the store.
// Documents are processed strictly one at a time; a single document's failure
// never aborts the batch.
type Pipeline struct {
	logger    *observability.Logger
	extractor extract.TextExtractor
	store     Store
	cfg       Config
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(logger *observability.Logger, extractor extract.TextExtractor, store Store, cfg Config) *Pipeline {
	if cfg.Extension == "" {
		cfg.Extension = ".pdf"
	}
	return &Pipeline{
		logger:    logger,
		extractor: extractor,
		store:     store,
		cfg:       cfg,
	}
}

// Run processes every recognized document in dir, non-recursively. A missing
// directory is fatal; everything past that precondition is per-document and
// folded into the returned Stats.
func (p *Pipeline) Run(ctx context.Context, dir string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(dir)
	if err != nil {
		return stats, fmt.Errorf("document directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("document directory %s: not a directory", dir)
	}

	files, err := p.listDocuments(dir)
	if err != nil {
		return stats, err
	}

	p.logger.Info().
		Str("dir", dir).
		Int("files", len(files)).
		Msg("starting document import")

	for i, name := range files {
		stats.Scanned++
		p.processDocument(ctx, dir, name, &stats)
		if p.cfg.Progress != nil {
			p.cfg.Progress(i+1, len(files))
		}
	}

	p.logger.Info().
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int("skipped", stats.Skipped).
		Msg("document import complete")

	return stats, nil
}

// listDocuments enumerates recognized document filenames in dir, sorted for a
// deterministic processing order.
func (p *Pipeline) listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), p.cfg.Extension) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// processDocument runs the identify-extract-normalize-upsert sequence for one
// document and folds the outcome into stats. Every error is caught here.
func (p *Pipeline) processDocument(ctx context.Context, dir, name string, stats *Stats) {
	licenseNumber, ok := license.LicenseNumberFromFilename(name)
	if !ok {
		stats.Skipped++
		p.logger.Warn().
			Str("file", name).
			Msg("skipping: filename does not start with 8 digits")
		return
	}

	text, err := p.extractor.ExtractText(ctx, filepath.Join(dir, name))
	if err != nil {
		stats.Failed++
		p.logger.Error().
			Err(err).
			Str("file", name).
			Msg("text extraction failed")
		return
	}

	fields := license.ExtractFields(text).Normalized()

	record, err := p.store.Upsert(ctx, licenseNumber, storage.LicenseFields{
		Number:             fields.Number,
		NotificationNumber: fields.NotificationNumber,
		ProductName:        fields.ProductName,
		Country:            fields.Country,
		Manufacturer:       fields.Manufacturer,
	})
	if err != nil {
		stats.Failed++
		p.logger.Error().
			Err(err).
			Str("file", name).
			Str("license_number", licenseNumber).
			Msg("upsert failed")
		return
	}

	stats.Succeeded++
	p.logger.Info().
		Str("license_number", record.LicenseNumber).
		Str("product_name", record.ProductName).
		Msg("processed document")
}
