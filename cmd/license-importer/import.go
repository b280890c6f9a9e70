package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cosmeticdb/license-registry/internal/extract"
	"github.com/cosmeticdb/license-registry/internal/ingest"
	"github.com/cosmeticdb/license-registry/internal/storage"
)

// newImportCmd creates the import subcommand.
func newImportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import scanned license PDFs from a directory",
		Long: `Import scans a directory of license documents named <8-digit-number>*.pdf,
extracts the license fields from each document's text, and upserts the records
into the registry.

Files whose names do not start with 8 digits are skipped. A document that fails
text extraction is counted as failed and the batch continues; re-running the
import is safe and replaces previously imported fields.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if dir == "" {
				dir = cfg.Documents.Dir
			}

			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewLicenseRepository(db)

			var bar *progressbar.ProgressBar
			pipeline := ingest.NewPipeline(logger, extract.NewPDFExtractor(), repo, ingest.Config{
				Extension: cfg.Documents.Extension,
				Progress: func(done, total int) {
					if outputJSON {
						return
					}
					if bar == nil {
						bar = newProgressBar(int64(total), "importing documents")
					}
					_ = bar.Set(done)
				},
			})

			stats, err := pipeline.Run(ctx, dir)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(stats)
			}

			fmt.Println()
			printSuccess("imported: %d", stats.Succeeded)
			if stats.Failed > 0 {
				printFailure("failed: %d", stats.Failed)
			}
			if stats.Skipped > 0 {
				fmt.Printf("  skipped: %d (no leading 8-digit license number)\n", stats.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "document directory (default: from config)")

	return cmd
}

// openDatabase opens, pings, and migrates the configured database.
// An unreachable database is fatal for every importer command.
func openDatabase(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB

	err := withSpinner("connecting to database", func() error {
		var err error
		db, err = storage.Open(cfg)
		if err != nil {
			return err
		}
		if err := storage.Ping(ctx, db); err != nil {
			db.Close()
			return err
		}
		return storage.Migrate(ctx, db)
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return db, nil
}
