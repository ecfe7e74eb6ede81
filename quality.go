package prex

import (
	"fmt"
	"strings"
)

// Default quality gate settings.
const (
	DefaultMaxPrice         = 50000.0
	DefaultQualityThreshold = 0.8
)

// DefaultRequiredFields returns the fields a product must carry to count
// as valid.
func DefaultRequiredFields() []string {
	return []string{FieldName, FieldPrice}
}

// Validation is the quality gate's verdict on one candidate.
type Validation struct {
	// Score is the normalized quality score in [0, 1].
	Score float64

	// Issues lists human-readable problems found during validation.
	Issues []string

	// MissingFields lists required fields with no value.
	MissingFields []string

	// Valid is true when all required fields are present. Validity is
	// independent of whether Score clears the listing threshold.
	Valid bool
}

// ValidateProduct scores a candidate's completeness and plausibility.
//
// The raw score is out of 10: +2 for each present field among name, price,
// brand, image and URL; +1 for a name longer than 5 characters; +1 for a
// price within (0, maxPrice]; +1 for an absolute http(s) URL. A price above
// maxPrice is flagged as suspect but the candidate is retained.
func ValidateProduct(p *Product, required []string, maxPrice float64) Validation {
	if required == nil {
		required = DefaultRequiredFields()
	}
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}

	v := Validation{Valid: true}

	for _, field := range required {
		if !p.Has(field) {
			v.MissingFields = append(v.MissingFields, field)
			v.Issues = append(v.Issues, fmt.Sprintf("missing required field: %s", field))
		}
	}

	score := 0
	for _, field := range []string{FieldName, FieldPrice, FieldBrand, FieldImage, FieldURL} {
		if p.Has(field) {
			score += 2
		}
	}

	if len(p.Name) > 5 {
		score++
	}

	if p.Price != nil {
		if *p.Price > 0 && *p.Price <= maxPrice {
			score++
		} else if *p.Price > maxPrice {
			v.Issues = append(v.Issues, fmt.Sprintf("price %.2f exceeds maximum %.2f", *p.Price, maxPrice))
		}
	}

	if strings.HasPrefix(p.URL, "http://") || strings.HasPrefix(p.URL, "https://") {
		score++
	}

	v.Score = float64(score) / 10.0
	if v.Score > 1.0 {
		v.Score = 1.0
	}
	v.Valid = len(v.MissingFields) == 0

	return v
}
