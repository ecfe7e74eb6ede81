package mock

import "github.com/fwojciec/prex"

var _ prex.Converter = (*Converter)(nil)

// Converter is a mock implementation of prex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ prex.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of prex.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (*prex.Content, error)
}

func (e *ContentExtractor) ExtractContent(html string) (*prex.Content, error) {
	return e.ExtractContentFn(html)
}
