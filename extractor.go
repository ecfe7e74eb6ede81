package prex

// CandidateExtractor produces product candidates from one page using a
// single extraction strategy.
type CandidateExtractor interface {
	// Extract parses HTML and returns candidates deduplicated by URL.
	// The baseURL is used to resolve relative URLs. A page with no
	// extractable products returns an empty slice and a nil error.
	Extract(html, baseURL string) ([]*Product, error)

	// Name returns the extractor's identifier (e.g., "structured").
	Name() string
}

// DetailExtractor recovers a single best-effort product from a product
// detail page, merging every available signal source on the page.
type DetailExtractor interface {
	ExtractDetail(html, baseURL string) (*Product, error)
}

// ExtractionStats describes a pipeline's configuration for introspection.
type ExtractionStats struct {
	PredictorsActive int     `json:"predictorsActive"`
	Policy           Policy  `json:"ensemblePolicy"`
	QualityThreshold float64 `json:"qualityThreshold"`
}

// Pipeline is the hybrid extraction pipeline boundary: a pure function of
// (HTML, base URL, configuration) to reconciled records.
type Pipeline interface {
	// ExtractListing returns quality-gated records deduplicated by URL.
	// An empty page yields an empty slice, not an error.
	ExtractListing(html, baseURL string) ([]*Reconciled, error)

	// ExtractDetail returns a single record with its quality score and
	// validation issues attached. Detail records are never filtered.
	ExtractDetail(html, baseURL string) (*Reconciled, error)

	// Stats returns configuration introspection with no side effects.
	Stats() ExtractionStats
}
