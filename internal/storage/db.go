package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cosmeticdb/license-registry/internal/config"
)

// Open opens a database connection for the configured driver.
// The caller is responsible for importing the matching driver package.
func Open(cfg *config.Config) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_journal_mode=%s&_foreign_keys=on",
			cfg.Database.SQLite.Path, cfg.Database.SQLite.JournalMode)
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// go-sqlite3 requires a single writer
		db.SetMaxOpenConns(cfg.Database.SQLite.MaxOpenConns)
		return db, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.Database.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.Postgres.ConnMaxLifetime)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// Ping verifies connectivity with a bounded timeout.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// Migrate creates the licenses schema if it does not exist.
// The DDL is restricted to the dialect shared by SQLite and Postgres.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS licenses (
			id TEXT PRIMARY KEY,
			license_number TEXT NOT NULL,
			number TEXT NOT NULL DEFAULT '',
			notification_number TEXT NOT NULL DEFAULT '',
			product_name TEXT NOT NULL,
			country TEXT NOT NULL,
			manufacturer TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_licenses_license_number
			ON licenses (license_number)`,
		`CREATE INDEX IF NOT EXISTS idx_licenses_product_name
			ON licenses (product_name)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
