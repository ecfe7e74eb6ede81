package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prex"
)

var _ prex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor extracts a single product from a detail page. It layers
// three sources in falling priority: JSON-LD product markup, OpenGraph
// and product meta tags, then plain DOM inspection. Sparse results are
// still returned; the caller inspects the attached quality score.
type DetailExtractor struct {
	structured *StructuredExtractor
}

// NewDetailExtractor creates a detail page extractor.
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{structured: NewStructuredExtractor()}
}

// ExtractDetail extracts one product from a detail page. The page URL is
// the product's identity when the markup carries no URL of its own.
func (e *DetailExtractor) ExtractDetail(html, baseURL string) (*prex.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, prex.Errorf(prex.EINVALID, "failed to parse HTML: %v", err)
	}

	p := &prex.Product{
		Availability: prex.AvailabilityUnknown,
		Source:       prex.SourceHeuristic,
	}
	if candidates, err := e.structured.Extract(html, baseURL); err == nil && len(candidates) > 0 {
		p = candidates[0]
	}

	fillFromMeta(doc, p, baseURL)
	fillFromDOM(doc, p, baseURL)

	if p.URL == "" {
		p.URL = prex.NormalizeURL(baseURL, baseURL)
	}
	return p, nil
}

// fillFromMeta fills empty fields from OpenGraph and product meta tags.
func fillFromMeta(doc *goquery.Document, p *prex.Product, baseURL string) {
	meta := func(names ...string) string {
		for _, name := range names {
			sel := doc.Find(`meta[property="` + name + `"], meta[name="` + name + `"]`).First()
			if content, ok := sel.Attr("content"); ok {
				if content = strings.TrimSpace(content); content != "" {
					return content
				}
			}
		}
		return ""
	}

	if p.Name == "" {
		p.Name = meta("og:title", "twitter:title")
	}
	if p.Image == "" {
		if img := meta("og:image", "twitter:image"); img != "" {
			p.Image = prex.NormalizeURL(img, baseURL)
			p.Images = []string{p.Image}
		}
	}
	if p.Price == nil {
		if raw := meta("product:price:amount", "og:price:amount"); raw != "" {
			if price := prex.ParsePrice(raw); price.Parsed() {
				p.Price = price.Amount
			}
		}
	}
	if p.Currency == "" {
		p.Currency = meta("product:price:currency", "og:price:currency")
	}
	if p.Description == "" {
		p.Description = meta("og:description", "description")
	}
	if p.URL == "" {
		p.URL = prex.NormalizeURL(meta("og:url"), baseURL)
	}
	if p.Brand == "" {
		p.Brand = meta("product:brand", "og:brand")
	}
}

// fillFromDOM fills whatever is still empty from page structure.
func fillFromDOM(doc *goquery.Document, p *prex.Product, baseURL string) {
	if p.Name == "" {
		p.Name = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if p.Price == nil {
		extractPrices(doc.Selection, p)
	}
	if p.Brand == "" {
		p.Brand = extractBrand(doc.Selection)
	}
	if p.Image == "" {
		if img := extractImage(doc.Selection, baseURL); img != "" {
			p.Image = img
			p.Images = []string{img}
		}
	}
	if p.Availability == prex.AvailabilityUnknown && soldOutRE.MatchString(doc.Text()) {
		p.Availability = prex.OutOfStock
	}
}
