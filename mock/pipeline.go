package mock

import "github.com/fwojciec/prex"

var _ prex.Pipeline = (*Pipeline)(nil)

// Pipeline is a mock implementation of prex.Pipeline.
type Pipeline struct {
	ExtractListingFn func(html, baseURL string) ([]*prex.Reconciled, error)
	ExtractDetailFn  func(html, baseURL string) (*prex.Reconciled, error)
	StatsFn          func() prex.ExtractionStats
}

func (p *Pipeline) ExtractListing(html, baseURL string) ([]*prex.Reconciled, error) {
	return p.ExtractListingFn(html, baseURL)
}

func (p *Pipeline) ExtractDetail(html, baseURL string) (*prex.Reconciled, error) {
	return p.ExtractDetailFn(html, baseURL)
}

func (p *Pipeline) Stats() prex.ExtractionStats {
	if p.StatsFn == nil {
		return prex.ExtractionStats{}
	}
	return p.StatsFn()
}
