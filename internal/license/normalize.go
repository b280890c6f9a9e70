package license

import (
	"regexp"
	"strings"
)

var (
	lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize cleans an extracted field value: trims surrounding whitespace,
// replaces line breaks with spaces, and collapses whitespace runs into a
// single space. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = lineBreaks.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return s
}
