// Package goquery implements HTML product extraction using the goquery
// DOM library: a structured-data extractor for embedded JSON-LD product
// graphs, a heuristic extractor for product-card containers, a detail
// page extractor, a product card locator, and a next-page resolver.
package goquery

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prex"
)

var _ prex.CandidateExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor parses JSON-LD product markup into candidates.
type StructuredExtractor struct{}

// NewStructuredExtractor creates a structured-data extractor.
func NewStructuredExtractor() *StructuredExtractor {
	return &StructuredExtractor{}
}

// Name returns the extractor's identifier.
func (e *StructuredExtractor) Name() string { return "structured" }

// Extract parses every ld+json script block in html and walks the parsed
// trees for product nodes. Blocks that fail to parse are skipped; a page
// with zero valid blocks yields an empty list, not an error. Results are
// deduplicated by normalized URL.
func (e *StructuredExtractor) Extract(html, baseURL string) ([]*prex.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, prex.Errorf(prex.EINVALID, "failed to parse HTML: %v", err)
	}

	var products []*prex.Product
	seen := make(map[string]bool)

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			// Invalid block, skip and keep going.
			return
		}
		walkStructured(data, baseURL, func(p *prex.Product) {
			if p.URL != "" {
				if seen[p.URL] {
					return
				}
				seen[p.URL] = true
			}
			products = append(products, p)
		})
	})

	return products, nil
}

// walkStructured recurses through a parsed JSON-LD tree emitting a
// product for every product-typed node. ItemList and OfferCatalog nodes
// recurse into their elements; a bare ListItem yields name and URL only.
func walkStructured(node any, baseURL string, emit func(*prex.Product)) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			walkStructured(item, baseURL, emit)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			walkStructured(graph, baseURL, emit)
		}
		switch {
		case hasType(v, "Product"):
			emit(productFromLD(v, baseURL))
		case hasType(v, "ItemList"), hasType(v, "OfferCatalog"):
			walkStructured(v["itemListElement"], baseURL, emit)
		case hasType(v, "ListItem"):
			if item, ok := v["item"]; ok {
				walkStructured(item, baseURL, emit)
				return
			}
			p := &prex.Product{
				Name:   ldString(v["name"]),
				URL:    prex.NormalizeURL(ldString(v["url"]), baseURL),
				Source: prex.SourceStructured,
			}
			if p.Name != "" || p.URL != "" {
				emit(p)
			}
		}
	}
}

// hasType reports whether the node's @type is, or contains, want.
func hasType(m map[string]any, want string) bool {
	switch t := m["@type"].(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func productFromLD(m map[string]any, baseURL string) *prex.Product {
	p := &prex.Product{
		Name:         ldString(m["name"]),
		Description:  ldString(m["description"]),
		SKU:          ldString(m["sku"]),
		URL:          prex.NormalizeURL(ldString(m["url"]), baseURL),
		Availability: prex.AvailabilityUnknown,
		Source:       prex.SourceStructured,
	}

	// Brand is either a plain string or a nested object with a name.
	switch b := m["brand"].(type) {
	case string:
		p.Brand = b
	case map[string]any:
		p.Brand = ldString(b["name"])
	}

	switch img := m["image"].(type) {
	case string:
		p.Image = prex.NormalizeURL(img, baseURL)
	case []any:
		for _, item := range img {
			if s := ldString(item); s != "" {
				p.Images = append(p.Images, prex.NormalizeURL(s, baseURL))
			}
		}
		if len(p.Images) > 0 {
			p.Image = p.Images[0]
		}
	case map[string]any:
		p.Image = prex.NormalizeURL(ldString(img["url"]), baseURL)
	}
	if p.Image != "" && len(p.Images) == 0 {
		p.Images = []string{p.Image}
	}

	if offer := firstObject(m["offers"]); offer != nil {
		if amount, ok := ldNumber(offer["price"]); ok {
			p.Price = &amount
		}
		p.Currency = ldString(offer["priceCurrency"])
		p.Availability = ldAvailability(ldString(offer["availability"]))
		if p.URL == "" {
			p.URL = prex.NormalizeURL(ldString(offer["url"]), baseURL)
		}
		if spec := firstObject(offer["priceSpecification"]); spec != nil {
			if amount, ok := ldNumber(spec["price"]); ok {
				p.OriginalPrice = &amount
			}
		}
	}

	return p
}

// firstObject unwraps a value that may be an object or an array of
// objects, returning the first object or nil.
func firstObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

func ldString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// ldNumber parses a price value that may be a JSON number or a string
// with thousands separators.
func ldNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ldAvailability maps schema.org availability values, which may appear as
// bare names or full schema.org URLs.
func ldAvailability(s string) prex.Availability {
	switch {
	case strings.Contains(s, "OutOfStock"):
		return prex.OutOfStock
	case strings.Contains(s, "InStock"):
		return prex.InStock
	}
	return prex.AvailabilityUnknown
}
