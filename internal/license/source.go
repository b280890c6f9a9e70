// Package license implements the core extraction logic for cosmetic product
// license documents: filename-based identification, field recovery from
// extracted text, and text normalization.
package license

import (
	"path/filepath"
	"regexp"
)

// filenameKeyPattern matches the leading 8-digit license number of a document
// filename. The filename, not the document text, is authoritative for the key:
// text extraction from scanned documents is too unreliable for it.
var filenameKeyPattern = regexp.MustCompile(`^\d{8}`)

// LicenseNumberFromFilename derives the canonical license number from a
// document filename. It returns false when the base name does not start with
// exactly 8 digits; such files are not applicable and produce no record.
func LicenseNumberFromFilename(filename string) (string, bool) {
	base := filepath.Base(filename)
	match := filenameKeyPattern.FindString(base)
	if match == "" {
		return "", false
	}
	return match, true
}
