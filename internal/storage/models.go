// Package storage provides database models and repositories for the license registry.
package storage

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// licenseNumberPattern is the canonical key format: exactly 8 ASCII digits.
var licenseNumberPattern = regexp.MustCompile(`^\d{8}$`)

// License is the canonical record for a cosmetic product license.
type License struct {
	ID                 uuid.UUID `json:"id"`
	LicenseNumber      string    `json:"licenseNumber"`
	Number             string    `json:"number,omitempty"`
	NotificationNumber string    `json:"notificationNumber,omitempty"`
	ProductName        string    `json:"productName"`
	Country            string    `json:"country"`
	Manufacturer       string    `json:"manufacturer"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// LicenseFields holds the non-key fields written by an upsert.
type LicenseFields struct {
	Number             string
	NotificationNumber string
	ProductName        string
	Country            string
	Manufacturer       string
}

// ValidationError indicates a record that fails the storage invariants.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ValidLicenseNumber reports whether s is a well-formed license number.
func ValidLicenseNumber(s string) bool {
	return licenseNumberPattern.MatchString(s)
}

// validateKey checks the license-number format invariant.
func validateKey(licenseNumber string) error {
	if !ValidLicenseNumber(licenseNumber) {
		return &ValidationError{
			Field:   "licenseNumber",
			Message: fmt.Sprintf("must be exactly 8 digits, got %q", licenseNumber),
		}
	}
	return nil
}

// validateFields checks that the required text fields are present.
func validateFields(f LicenseFields) error {
	required := []struct {
		field string
		value string
	}{
		{"productName", f.ProductName},
		{"country", f.Country},
		{"manufacturer", f.Manufacturer},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: "is required"}
		}
	}
	return nil
}
