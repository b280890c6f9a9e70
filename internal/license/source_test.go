package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLicenseNumberFromFilename_Valid(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain", "12345678.pdf", "12345678"},
		{"suffix after digits", "12345678_doc.pdf", "12345678"},
		{"longer digit run keeps first 8", "123456789.pdf", "12345678"},
		{"with path", "/data/uploads/64300861 approval.pdf", "64300861"},
		{"no extension", "87654321", "87654321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LicenseNumberFromFilename(tt.filename)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLicenseNumberFromFilename_NotApplicable(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"empty", ""},
		{"too few digits", "1234567.pdf"},
		{"leading letter", "a12345678.pdf"},
		{"leading space", " 12345678.pdf"},
		{"no digits", "scan.pdf"},
		{"digits not at start", "doc-12345678.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LicenseNumberFromFilename(tt.filename)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}
