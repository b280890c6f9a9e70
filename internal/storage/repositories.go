package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNotFound         = errors.New("license not found")
	ErrDuplicateLicense = errors.New("license number already exists")
	ErrEmptyQuery       = errors.New("search query is required")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// LicenseRepository handles license record persistence.
type LicenseRepository struct {
	db DB
}

// NewLicenseRepository creates a new license repository.
func NewLicenseRepository(db DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

const licenseColumns = `id, license_number, number, notification_number,
	product_name, country, manufacturer, created_at, updated_at`

// Create inserts a new license record. It fails with ErrDuplicateLicense if the
// license number is already present, and with a *ValidationError if the key or
// a required field is invalid.
func (r *LicenseRepository) Create(ctx context.Context, license *License) error {
	if err := validateKey(license.LicenseNumber); err != nil {
		return err
	}
	if err := validateFields(LicenseFields{
		Number:             license.Number,
		NotificationNumber: license.NotificationNumber,
		ProductName:        license.ProductName,
		Country:            license.Country,
		Manufacturer:       license.Manufacturer,
	}); err != nil {
		return err
	}

	if license.ID == uuid.Nil {
		license.ID = uuid.New()
	}
	now := time.Now().UTC()
	license.CreatedAt = now
	license.UpdatedAt = now

	// DO NOTHING keeps duplicate detection atomic and driver-agnostic:
	// zero rows affected means the key already existed.
	query := `
		INSERT INTO licenses (` + licenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (license_number) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		license.ID.String(), license.LicenseNumber, license.Number, license.NotificationNumber,
		license.ProductName, license.Country, license.Manufacturer,
		license.CreatedAt, license.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert license: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert license: %w", err)
	}
	if affected == 0 {
		return ErrDuplicateLicense
	}
	return nil
}

// Upsert inserts a license record for licenseNumber or, if one exists, replaces
// all its non-key fields and bumps updated_at. It never fails on an existing key.
func (r *LicenseRepository) Upsert(ctx context.Context, licenseNumber string, fields LicenseFields) (*License, error) {
	if err := validateKey(licenseNumber); err != nil {
		return nil, err
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO licenses (` + licenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (license_number) DO UPDATE SET
			number = excluded.number,
			notification_number = excluded.notification_number,
			product_name = excluded.product_name,
			country = excluded.country,
			manufacturer = excluded.manufacturer,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(), licenseNumber, fields.Number, fields.NotificationNumber,
		fields.ProductName, fields.Country, fields.Manufacturer,
		now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert license: %w", err)
	}

	return r.GetByLicenseNumber(ctx, licenseNumber)
}

// GetByID retrieves a license by its internal id.
func (r *LicenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id.String()))
}

// GetByLicenseNumber retrieves a license by its canonical key.
func (r *LicenseRepository) GetByLicenseNumber(ctx context.Context, licenseNumber string) (*License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses WHERE license_number = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, licenseNumber))
}

// List returns all licenses, newest first.
func (r *LicenseRepository) List(ctx context.Context) ([]*License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Search returns licenses whose key equals query exactly, or whose product name
// contains query as a case-insensitive substring, newest first.
func (r *LicenseRepository) Search(ctx context.Context, query string) ([]*License, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, ErrEmptyQuery
	}

	stmt := `
		SELECT ` + licenseColumns + `
		FROM licenses
		WHERE license_number = $1
			OR LOWER(product_name) LIKE '%' || LOWER($2) || '%' ESCAPE '\'
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, stmt, term, escapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("search licenses: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// DeleteAll removes every license record. Used for bulk resets only.
func (r *LicenseRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM licenses`)
	if err != nil {
		return 0, fmt.Errorf("delete licenses: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored licenses.
func (r *LicenseRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM licenses`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count licenses: %w", err)
	}
	return n, nil
}

func (r *LicenseRepository) scanOne(row *sql.Row) (*License, error) {
	license := &License{}
	var id string
	err := row.Scan(
		&id, &license.LicenseNumber, &license.Number, &license.NotificationNumber,
		&license.ProductName, &license.Country, &license.Manufacturer,
		&license.CreatedAt, &license.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	license.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse license id: %w", err)
	}
	return license, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so the search term matches as a
// literal substring.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (r *LicenseRepository) scanAll(rows *sql.Rows) ([]*License, error) {
	// Non-nil so empty result sets serialize as a JSON array, not null.
	licenses := []*License{}
	for rows.Next() {
		license := &License{}
		var id string
		if err := rows.Scan(
			&id, &license.LicenseNumber, &license.Number, &license.NotificationNumber,
			&license.ProductName, &license.Country, &license.Manufacturer,
			&license.CreatedAt, &license.UpdatedAt,
		); err != nil {
			return nil, err
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse license id: %w", err)
		}
		license.ID = parsed
		licenses = append(licenses, license)
	}
	return licenses, rows.Err()
}
