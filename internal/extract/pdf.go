package extract

import (
	"context"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PDFExtractor extracts text from PDF documents using go-fitz (MuPDF).
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF text extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText opens the PDF at path and concatenates the text of every page.
// Any go-fitz failure is wrapped in an *ExtractionError carrying the path.
func (e *PDFExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		select {
		case <-ctx.Done():
			return "", &ExtractionError{Path: path, Err: ctx.Err()}
		default:
		}

		text, err := doc.Text(page)
		if err != nil {
			return "", &ExtractionError{Path: path, Err: err}
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
