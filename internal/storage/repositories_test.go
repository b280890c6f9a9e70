package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *LicenseRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return NewLicenseRepository(db)
}

func testFields(productName string) LicenseFields {
	return LicenseFields{
		Number:             "2/182319/24",
		NotificationNumber: "0622025102818",
		ProductName:        productName,
		Country:            "France",
		Manufacturer:       "L'Oreal Paris",
	}
}

func TestLicenseRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	license := &License{
		LicenseNumber: "12345678",
		ProductName:   "Face Cream",
		Country:       "France",
		Manufacturer:  "L'Oreal Paris",
	}
	require.NoError(t, repo.Create(ctx, license))
	assert.NotEqual(t, uuid.Nil, license.ID)
	assert.False(t, license.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, license.ID)
	require.NoError(t, err)
	assert.Equal(t, "12345678", got.LicenseNumber)
	assert.Equal(t, "Face Cream", got.ProductName)

	got, err = repo.GetByLicenseNumber(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, license.ID, got.ID)
}

func TestLicenseRepository_CreateDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &License{
		LicenseNumber: "12345678",
		ProductName:   "Face Cream",
		Country:       "France",
		Manufacturer:  "L'Oreal Paris",
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &License{
		LicenseNumber: "12345678",
		ProductName:   "Body Lotion",
		Country:       "Germany",
		Manufacturer:  "Nivea GmbH",
	}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateLicense)

	// The original record is untouched.
	got, err := repo.GetByLicenseNumber(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, "Face Cream", got.ProductName)
}

func TestLicenseRepository_CreateValidation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		license *License
	}{
		{"too short key", &License{LicenseNumber: "1234567", ProductName: "P", Country: "C", Manufacturer: "M"}},
		{"too long key", &License{LicenseNumber: "123456789", ProductName: "P", Country: "C", Manufacturer: "M"}},
		{"non-digit key", &License{LicenseNumber: "1234567a", ProductName: "P", Country: "C", Manufacturer: "M"}},
		{"empty key", &License{ProductName: "P", Country: "C", Manufacturer: "M"}},
		{"missing product name", &License{LicenseNumber: "12345678", Country: "C", Manufacturer: "M"}},
		{"missing country", &License{LicenseNumber: "12345678", ProductName: "P", Manufacturer: "M"}},
		{"missing manufacturer", &License{LicenseNumber: "12345678", ProductName: "P", Country: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.license)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestLicenseRepository_UpsertInsertsThenReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "12345678", testFields("Face Cream"))
	require.NoError(t, err)
	assert.Equal(t, "Face Cream", created.ProductName)

	time.Sleep(10 * time.Millisecond)

	updated, err := repo.Upsert(ctx, "12345678", testFields("Face Cream Deluxe"))
	require.NoError(t, err)

	// Same record, replaced fields, bumped updated_at.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Face Cream Deluxe", updated.ProductName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLicenseRepository_UpsertValidation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "not-a-key", testFields("Face Cream"))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = repo.Upsert(ctx, "12345678", LicenseFields{ProductName: "P"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestLicenseRepository_Search(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "12345678", testFields("Face Cream"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "87654321", testFields("Body Lotion"))
	require.NoError(t, err)

	// Case-insensitive substring on product name.
	results, err := repo.Search(ctx, "CREAM")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "12345678", results[0].LicenseNumber)

	// Exact key match, even though the product name does not contain the query.
	results, err = repo.Search(ctx, "87654321")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Body Lotion", results[0].ProductName)

	// No match.
	results, err = repo.Search(ctx, "shampoo")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Empty or whitespace-only query is a caller error.
	_, err = repo.Search(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestLicenseRepository_SearchNoMatchReturnsEmptySlice(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Non-nil so the API envelope serializes data as [] rather than null.
	results, err := repo.Search(ctx, "nomatch")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Len(t, results, 0)

	licenses, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, licenses)
}

func TestLicenseRepository_SearchTreatsWildcardsAsLiterals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "12345678", testFields("Face Cream"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "87654321", testFields("50% Aloe Gel"))
	require.NoError(t, err)

	// % and _ must not act as LIKE wildcards.
	results, err := repo.Search(ctx, "F%m")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = repo.Search(ctx, "F_ce")
	require.NoError(t, err)
	assert.Empty(t, results)

	// A literal % in the product name is still findable.
	results, err = repo.Search(ctx, "50%")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "87654321", results[0].LicenseNumber)
}

func TestLicenseRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, key := range []string{"11111111", "22222222", "33333333"} {
		_, err := repo.Upsert(ctx, key, testFields("Product "+key))
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	licenses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, licenses, 3)
	assert.Equal(t, "33333333", licenses[0].LicenseNumber)
	assert.Equal(t, "11111111", licenses[2].LicenseNumber)
}

func TestLicenseRepository_DeleteAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "12345678", testFields("Face Cream"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "87654321", testFields("Body Lotion"))
	require.NoError(t, err)

	removed, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLicenseRepository_GetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
