package license

import "regexp"

// Missing-field sentinels. Labeled fields fall back to explicit "Unknown"
// values rather than empty strings so a stored record never has empty
// required fields.
const (
	UnknownProduct      = "Unknown Product"
	UnknownManufacturer = "Unknown Manufacturer"
	UnknownCountry      = "Unknown Country"
)

// Fields holds the structured values recovered from a document's text.
type Fields struct {
	Number             string
	NotificationNumber string
	ProductName        string
	Country            string
	Manufacturer       string
}

// fieldRules is an ordered pattern chain for one field: patterns are tried in
// declared order and the first match wins. Hebrew text extracted from scanned
// PDFs is sometimes visually reversed (character order flipped), so the
// labeled fields carry both the forward label variants and a reversed
// fallback variant of the same label. The fallback is static; no directional
// detection or active reversal is attempted.
type fieldRules struct {
	patterns []*regexp.Regexp
	sentinel string
}

var (
	numberRules = fieldRules{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d{1,2}/\d{6}/\d{1,2}`),
		},
	}

	notificationRules = fieldRules{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d{13,14}`),
		},
	}

	productNameRules = fieldRules{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:שם התמרוק בעברית|Product Name|תירבעב קורמתה םש|םש קורמתה תירבעב)[:\s]+(.+)`),
			regexp.MustCompile(`(?i)(?:קורמתה םש)[:\s]+(.+)`),
		},
		sentinel: UnknownProduct,
	}

	manufacturerRules = fieldRules{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:הערות כתובת|תבותכ תורעה|כתובתו|ותבותכ)[:\s]+(.+)`),
		},
		sentinel: UnknownManufacturer,
	}

	countryRules = fieldRules{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:שם המפעל המייצר|שם יצרן בחו"ל|םש לעפמה רציימה|םש ןרצי ל"וחב)[:\s]+(.+)`),
			regexp.MustCompile(`(?i)(?:רוציי ץרא)[:\s]+(.+)`),
		},
		sentinel: UnknownCountry,
	}
)

// ExtractFields recovers the structured license fields from raw document text.
// Each field resolves independently; a field with no matching pattern takes
// its sentinel value. ExtractFields never fails and performs no semantic
// validation of the recovered values.
func ExtractFields(text string) Fields {
	return Fields{
		Number:             extractFirst(text, numberRules),
		NotificationNumber: extractFirst(text, notificationRules),
		ProductName:        extractFirst(text, productNameRules),
		Country:            extractFirst(text, countryRules),
		Manufacturer:       extractFirst(text, manufacturerRules),
	}
}

// Normalized returns a copy of f with Normalize applied to every field.
func (f Fields) Normalized() Fields {
	return Fields{
		Number:             Normalize(f.Number),
		NotificationNumber: Normalize(f.NotificationNumber),
		ProductName:        Normalize(f.ProductName),
		Country:            Normalize(f.Country),
		Manufacturer:       Normalize(f.Manufacturer),
	}
}

// extractFirst applies the rule chain in order and returns the first match,
// or the field's sentinel if nothing matches. A pattern with a capture group
// yields the group; otherwise the whole match is the value.
func extractFirst(text string, rules fieldRules) string {
	for _, re := range rules.patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return m[1]
		}
		return m[0]
	}
	return rules.sentinel
}
