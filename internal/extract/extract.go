// Package extract converts binary license documents into plain text.
package extract

import (
	"context"
	"fmt"
)

// TextExtractor converts a document on disk into a plain-text representation.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ExtractionError indicates that text extraction failed for one document.
// During batch ingestion it is a per-document failure, never a batch abort.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
