package prex

import (
	"context"
	"time"
)

// Availability describes whether a product can currently be purchased.
type Availability string

// Availability states. AvailabilityUnknown is used when a page gives no
// signal either way.
const (
	InStock             Availability = "InStock"
	OutOfStock          Availability = "OutOfStock"
	AvailabilityUnknown Availability = "Unknown"
)

// Source identifies which extraction strategy produced a candidate or won
// a contested field.
type Source string

// Extraction sources.
const (
	SourceStructured Source = "structured"
	SourceHeuristic  Source = "heuristic"
	SourceSignal     Source = "signal"
)

// Canonical field names used for confidence tracking, field-source
// attribution, and quality scoring.
const (
	FieldName  = "name"
	FieldPrice = "price"
	FieldBrand = "brand"
	FieldImage = "image"
	FieldURL   = "url"
)

// Product is one extraction source's view of a single product. The URL is
// the identity key: two candidates with the same normalized URL denote the
// same product and are merged, never duplicated.
//
// Optional numeric fields use pointers so that "absent" and "zero" stay
// distinguishable; a nil Price means no price could be extracted.
type Product struct {
	Name          string       `json:"name,omitempty"`
	Price         *float64     `json:"price,omitempty"`
	Currency      string       `json:"priceCurrency,omitempty"`
	PriceText     string       `json:"priceText,omitempty"`
	OriginalPrice *float64     `json:"originalPrice,omitempty"`
	Discount      string       `json:"discount,omitempty"`
	Brand         string       `json:"brand,omitempty"`
	URL           string       `json:"url,omitempty"`
	Image         string       `json:"image,omitempty"`
	Images        []string     `json:"images,omitempty"`
	Availability  Availability `json:"availability,omitempty"`
	Description   string       `json:"description,omitempty"`
	SKU           string       `json:"sku,omitempty"`
	Variants      []string     `json:"variants,omitempty"`

	// Provenance metadata. Not part of the reconciled public record.
	Source     Source             `json:"-"`
	Confidence map[string]float64 `json:"-"`
}

// Validate returns an error if the product lacks an identity URL.
// Candidates without a URL cannot be deduplicated or reconciled and are
// dropped before they reach the pipeline's later stages.
func (p *Product) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "product URL required")
	}
	return nil
}

// SetConfidence records a per-field confidence, clamping out-of-range
// values into [0, 1].
func (p *Product) SetConfidence(field string, c float64) {
	if p.Confidence == nil {
		p.Confidence = make(map[string]float64)
	}
	p.Confidence[field] = ClampConfidence(c)
}

// FieldConfidence returns the recorded confidence for a field.
// Unscored fields return 0.
func (p *Product) FieldConfidence(field string) float64 {
	return p.Confidence[field]
}

// Has reports whether a canonical field holds a usable value.
func (p *Product) Has(field string) bool {
	switch field {
	case FieldName:
		return p.Name != ""
	case FieldPrice:
		return p.Price != nil
	case FieldBrand:
		return p.Brand != ""
	case FieldImage:
		return p.Image != ""
	case FieldURL:
		return p.URL != ""
	}
	return false
}

// Clone returns a deep copy of the product. The pipeline clones candidates
// before reconciliation so stage outputs never alias stage inputs.
func (p *Product) Clone() *Product {
	out := *p
	if p.Price != nil {
		v := *p.Price
		out.Price = &v
	}
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Variants != nil {
		out.Variants = append([]string(nil), p.Variants...)
	}
	if p.Confidence != nil {
		out.Confidence = make(map[string]float64, len(p.Confidence))
		for k, v := range p.Confidence {
			out.Confidence[k] = v
		}
	}
	return &out
}

// ClampConfidence forces a confidence value into [0, 1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Reconciled is the ensemble output: one product plus, per contested field,
// the source that won, and the quality gate's verdict.
type Reconciled struct {
	Product

	// FieldSources records which input source won each contested field.
	FieldSources map[string]Source `json:"fieldSources,omitempty"`

	// QualityScore is the quality gate's normalized score in [0, 1].
	QualityScore float64 `json:"qualityScore"`

	// Issues lists the validation problems found by the quality gate.
	Issues []string `json:"issues,omitempty"`

	// Valid is true when every required field is present. Validity is
	// independent of the quality threshold used for listing filtering.
	Valid bool `json:"valid"`
}

// ProductRecord is a stored product with persistence metadata.
type ProductRecord struct {
	ID          string     `json:"id"`
	Product     Reconciled `json:"product"`
	Fingerprint string     `json:"fingerprint"`
	SourceURL   string     `json:"sourceUrl"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ProductRecord) Validate() error {
	if r.Product.URL == "" {
		return Errorf(EINVALID, "product record URL required")
	}
	return nil
}

// ProductService represents a service for persisting scraped products.
type ProductService interface {
	// SaveProduct inserts or updates a record, keyed by product URL.
	SaveProduct(ctx context.Context, rec *ProductRecord) error

	// FindProductByURL retrieves a record by its product URL.
	// Returns ENOTFOUND if no record exists.
	FindProductByURL(ctx context.Context, url string) (*ProductRecord, error)

	// FindProducts retrieves records matching the filter.
	FindProducts(ctx context.Context, filter ProductFilter) ([]*ProductRecord, error)

	// DeleteProduct permanently removes a record by product URL.
	// Returns ENOTFOUND if no record exists.
	DeleteProduct(ctx context.Context, url string) error
}

// ProductFilter represents a filter for FindProducts.
type ProductFilter struct {
	Brand        *string       `json:"brand"`
	Availability *Availability `json:"availability"`
	MinQuality   *float64      `json:"minQuality"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
