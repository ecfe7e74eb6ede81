// Package extract implements the hybrid extraction pipeline: candidate
// collection from multiple extractors, signal predictor enrichment,
// ensemble reconciliation, and quality gating.
package extract

import (
	"github.com/fwojciec/prex"
)

var _ prex.Pipeline = (*Pipeline)(nil)

// Pipeline runs one extraction pass per call. Each invocation is
// self-contained: all candidate state is local to the call, so a single
// pipeline value is safe for concurrent use.
type Pipeline struct {
	cfg        prex.Config
	extractors []prex.CandidateExtractor
	detail     prex.DetailExtractor
	signals    prex.SignalSource
	locator    prex.CardLocator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractors sets the candidate extractors, run in the given order.
// Earlier extractors win field conflicts during merging, so the
// structured-data extractor should come first.
func WithExtractors(extractors ...prex.CandidateExtractor) Option {
	return func(p *Pipeline) { p.extractors = extractors }
}

// WithDetailExtractor sets the detail page extractor.
func WithDetailExtractor(d prex.DetailExtractor) Option {
	return func(p *Pipeline) { p.detail = d }
}

// WithSignals sets the signal predictor source used for enrichment.
func WithSignals(s prex.SignalSource) Option {
	return func(p *Pipeline) { p.signals = s }
}

// WithLocator sets the card locator that supplies predictor context.
func WithLocator(l prex.CardLocator) Option {
	return func(p *Pipeline) { p.locator = l }
}

// NewPipeline creates a pipeline, validating the configuration eagerly so
// that illegal thresholds or policies never reach extraction time.
func NewPipeline(cfg prex.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.extractors) == 0 {
		return nil, prex.Errorf(prex.EINVALID, "at least one candidate extractor required")
	}
	return p, nil
}

// ExtractListing runs the full pipeline over a listing page: collect
// candidates from every extractor, merge duplicates by URL, enrich with
// signal predictions, reconcile contested fields, then quality-gate.
// A page with no products yields an empty slice and a nil error.
func (p *Pipeline) ExtractListing(html, baseURL string) ([]*prex.Reconciled, error) {
	candidates := p.collect(html, baseURL)
	merged := mergeByURL(candidates)

	out := make([]*prex.Reconciled, 0, len(merged))
	for _, candidate := range merged {
		rec := p.reconcile(candidate, p.enrich(html, candidate))
		p.gate(rec)
		if rec.QualityScore >= p.cfg.QualityThreshold {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ExtractDetail extracts a single record from a product detail page. The
// record is returned regardless of quality; the score and validation
// issues are attached for the caller to inspect.
func (p *Pipeline) ExtractDetail(html, baseURL string) (*prex.Reconciled, error) {
	if p.detail == nil {
		return nil, prex.Errorf(prex.EINVALID, "no detail extractor configured")
	}
	candidate, err := p.detail.ExtractDetail(html, baseURL)
	if err != nil {
		return nil, err
	}
	rec := p.reconcile(candidate, p.enrich(html, candidate))
	p.gate(rec)
	return rec, nil
}

// Stats returns configuration introspection with no side effects.
func (p *Pipeline) Stats() prex.ExtractionStats {
	active := 0
	if p.signals != nil {
		active = p.signals.Active()
	}
	return prex.ExtractionStats{
		PredictorsActive: active,
		Policy:           p.cfg.Policy,
		QualityThreshold: p.cfg.QualityThreshold,
	}
}

// collect runs every extractor and concatenates their candidates in
// extractor order. A failing extractor is treated as contributing nothing;
// extraction failures never abort the page.
func (p *Pipeline) collect(html, baseURL string) []*prex.Product {
	var candidates []*prex.Product
	for _, e := range p.extractors {
		found, err := e.Extract(html, baseURL)
		if err != nil {
			continue
		}
		candidates = append(candidates, found...)
	}
	return candidates
}

// mergeByURL groups candidates by normalized URL, preserving first-seen
// order. Within a group the earliest candidate wins contested fields and
// later candidates fill its gaps. Candidates without a URL cannot be
// addressed downstream and are dropped.
func mergeByURL(candidates []*prex.Product) []*prex.Product {
	index := make(map[string]int)
	var merged []*prex.Product

	for _, c := range candidates {
		if c.Validate() != nil {
			continue
		}
		if i, ok := index[c.URL]; ok {
			fillMissing(merged[i], c)
			continue
		}
		index[c.URL] = len(merged)
		merged = append(merged, c.Clone())
	}
	return merged
}

// fillMissing copies fields from src into dst where dst has no value.
func fillMissing(dst, src *prex.Product) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Price == nil && src.Price != nil {
		v := *src.Price
		dst.Price = &v
		dst.PriceText = src.PriceText
	}
	if dst.Currency == "" {
		dst.Currency = src.Currency
	}
	if dst.OriginalPrice == nil && src.OriginalPrice != nil {
		v := *src.OriginalPrice
		dst.OriginalPrice = &v
	}
	if dst.Discount == "" {
		dst.Discount = src.Discount
	}
	if dst.Brand == "" {
		dst.Brand = src.Brand
	}
	if dst.Image == "" {
		dst.Image = src.Image
	}
	if len(dst.Images) == 0 && len(src.Images) > 0 {
		dst.Images = append([]string(nil), src.Images...)
	}
	if dst.Availability == "" || dst.Availability == prex.AvailabilityUnknown {
		if src.Availability != "" {
			dst.Availability = src.Availability
		}
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.SKU == "" {
		dst.SKU = src.SKU
	}
	if len(dst.Variants) == 0 && len(src.Variants) > 0 {
		dst.Variants = append([]string(nil), src.Variants...)
	}
}

// enrich runs the signal predictors against the candidate's card context.
// Enrichment is skipped entirely when no predictors are active or no card
// context can be located; a missing signal is an abstention, not an error.
func (p *Pipeline) enrich(html string, candidate *prex.Product) prex.Signals {
	if p.signals == nil || p.signals.Active() == 0 || p.locator == nil {
		return prex.Signals{}
	}
	features, ok := p.locator.Locate(html, candidate.URL)
	if !ok {
		return prex.Signals{}
	}
	return p.signals.Predict(features)
}

// gate applies the quality gate, attaching score, issues and validity.
func (p *Pipeline) gate(rec *prex.Reconciled) {
	v := prex.ValidateProduct(&rec.Product, p.cfg.RequiredFields, p.cfg.MaxPrice)
	rec.QualityScore = v.Score
	rec.Issues = v.Issues
	rec.Valid = v.Valid
}
