package mock

import "github.com/fwojciec/prex"

var _ prex.CandidateExtractor = (*CandidateExtractor)(nil)

// CandidateExtractor is a mock implementation of prex.CandidateExtractor.
type CandidateExtractor struct {
	ExtractFn func(html, baseURL string) ([]*prex.Product, error)
	NameFn    func() string
}

func (e *CandidateExtractor) Extract(html, baseURL string) ([]*prex.Product, error) {
	return e.ExtractFn(html, baseURL)
}

func (e *CandidateExtractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

var _ prex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of prex.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailFn func(html, baseURL string) (*prex.Product, error)
}

func (e *DetailExtractor) ExtractDetail(html, baseURL string) (*prex.Product, error) {
	return e.ExtractDetailFn(html, baseURL)
}
