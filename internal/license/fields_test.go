package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields_EnglishLabels(t *testing.T) {
	text := "Product Name: Face Cream\nsome other line\n"

	fields := ExtractFields(text)

	assert.Equal(t, "Face Cream", fields.ProductName)
	assert.Equal(t, UnknownManufacturer, fields.Manufacturer)
	assert.Equal(t, UnknownCountry, fields.Country)
}

func TestExtractFields_HebrewLabels(t *testing.T) {
	text := `שם התמרוק בעברית: קרם לחות מועשר
שם המפעל המייצר: צרפת
הערות כתובת: L'Oreal Paris
`

	fields := ExtractFields(text)

	assert.Equal(t, "קרם לחות מועשר", fields.ProductName)
	assert.Equal(t, "צרפת", fields.Country)
	assert.Equal(t, "L'Oreal Paris", fields.Manufacturer)
}

func TestExtractFields_ReversedLabelFallback(t *testing.T) {
	// Visually-reversed Hebrew, as produced by some scanned PDFs.
	text := `קורמתה םש: הצחר לג
רוציי ץרא: לארשי
`

	fields := ExtractFields(text)

	assert.Equal(t, "הצחר לג", fields.ProductName)
	assert.Equal(t, "לארשי", fields.Country)
}

func TestExtractFields_ForwardPatternWinsOverReversed(t *testing.T) {
	text := `Product Name: Forward Cream
קורמתה םש: Reversed Cream
`

	fields := ExtractFields(text)

	assert.Equal(t, "Forward Cream", fields.ProductName)
}

func TestExtractFields_ValueStopsAtEndOfLine(t *testing.T) {
	text := "Product Name: Face Cream\nCountry leftovers on next line\n"

	fields := ExtractFields(text)

	assert.Equal(t, "Face Cream", fields.ProductName)
}

func TestExtractFields_NumberShapes(t *testing.T) {
	text := "license ref 2/182319/24 notified under 0622025102818\n"

	fields := ExtractFields(text)

	assert.Equal(t, "2/182319/24", fields.Number)
	assert.Equal(t, "0622025102818", fields.NotificationNumber)
}

func TestExtractFields_Sentinels(t *testing.T) {
	fields := ExtractFields("nothing recognizable in here")

	assert.Empty(t, fields.Number)
	assert.Empty(t, fields.NotificationNumber)
	assert.Equal(t, UnknownProduct, fields.ProductName)
	assert.Equal(t, UnknownManufacturer, fields.Manufacturer)
	assert.Equal(t, UnknownCountry, fields.Country)
}

func TestExtractFields_NeverEmptyLabeledFields(t *testing.T) {
	texts := []string{
		"",
		"garbage",
		"Product Name without separator value missing",
	}

	for _, text := range texts {
		fields := ExtractFields(text)
		assert.NotEmpty(t, fields.ProductName)
		assert.NotEmpty(t, fields.Manufacturer)
		assert.NotEmpty(t, fields.Country)
	}
}

func TestFields_Normalized(t *testing.T) {
	fields := Fields{
		Number:             " 2/182319/24 ",
		NotificationNumber: "0622025102818",
		ProductName:        "Face\nCream",
		Country:            "  France ",
		Manufacturer:       "L'Oreal \t Paris",
	}

	got := fields.Normalized()

	assert.Equal(t, "2/182319/24", got.Number)
	assert.Equal(t, "0622025102818", got.NotificationNumber)
	assert.Equal(t, "Face Cream", got.ProductName)
	assert.Equal(t, "France", got.Country)
	assert.Equal(t, "L'Oreal Paris", got.Manufacturer)
}
