// Package bloom provides a probabilistic seen-set for crawl deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which product URLs a crawl has already queued. It trades
// exactness for constant memory, which matters when sitemaps list tens of
// thousands of detail pages.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL may have been seen. A false positive skips
// a page; a false negative cannot occur.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
