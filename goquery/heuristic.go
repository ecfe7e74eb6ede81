package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prex"
)

var _ prex.CandidateExtractor = (*HeuristicExtractor)(nil)

// HeuristicExtractor recovers product candidates purely from document
// structure, for pages lacking structured markup.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates a heuristic extractor.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Name returns the extractor's identifier.
func (e *HeuristicExtractor) Name() string { return "heuristic" }

const containerTags = "div, li, article, section"

var (
	priceHintRE   = regexp.MustCompile(`[$€£¥]\s?\d`)
	priceTextRE   = regexp.MustCompile(`[$€£¥]\s?\d+(?:,\d{3})*(?:\.\d{2})?`)
	wasPriceRE    = regexp.MustCompile(`(?i)\b(was|old|compare|retail|msrp)\b`)
	discountRE    = regexp.MustCompile(`(?i)\d+\s?%\s*(?:off|discount)|save\s+\d+\s?%`)
	soldOutRE     = regexp.MustCompile(`(?i)sold\s+out|unavailable|out\s+of\s+stock`)
	placeholderRE = regexp.MustCompile(`(?i)\b(select|choose|pick)\b`)
)

var (
	productClassHints = []string{"product", "item", "card", "listing", "tile"}
	navClassHints     = []string{"nav", "footer", "header", "menu", "breadcrumb"}
)

// Extract scans container-like elements for product cards. A container
// qualifies when it holds both an image and a link, carries a price-like
// pattern or a product-ish class, and carries no nav-ish class. Nested
// qualifying containers keep only the innermost match. Results are
// deduplicated by normalized URL.
func (e *HeuristicExtractor) Extract(html, baseURL string) ([]*prex.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, prex.Errorf(prex.EINVALID, "failed to parse HTML: %v", err)
	}

	var products []*prex.Product
	seen := make(map[string]bool)

	doc.Find(containerTags).Each(func(_ int, sel *goquery.Selection) {
		if !isProductContainer(sel) {
			return
		}
		// Prefer the innermost qualifying container.
		inner := false
		sel.Find(containerTags).EachWithBreak(func(_ int, child *goquery.Selection) bool {
			if isProductContainer(child) {
				inner = true
				return false
			}
			return true
		})
		if inner {
			return
		}

		p := extractCard(sel, baseURL)
		if p.URL != "" {
			if seen[p.URL] {
				return
			}
			seen[p.URL] = true
		}
		products = append(products, p)
	})

	return products, nil
}

// isProductContainer applies the card heuristic: image AND link AND
// (price pattern OR product-ish class) AND NOT nav-ish class.
func isProductContainer(sel *goquery.Selection) bool {
	class := strings.ToLower(sel.AttrOr("class", ""))
	for _, hint := range navClassHints {
		if strings.Contains(class, hint) {
			return false
		}
	}
	if sel.Find("img").Length() == 0 || sel.Find("a[href]").Length() == 0 {
		return false
	}
	for _, hint := range productClassHints {
		if strings.Contains(class, hint) {
			return true
		}
	}
	return priceHintRE.MatchString(sel.Text())
}

func extractCard(sel *goquery.Selection, baseURL string) *prex.Product {
	p := &prex.Product{
		Availability: prex.InStock,
		Source:       prex.SourceHeuristic,
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		p.URL = prex.NormalizeURL(href, baseURL)
	}

	p.Name = extractName(sel)
	extractPrices(sel, p)
	p.Image = extractImage(sel, baseURL)
	if p.Image != "" {
		p.Images = []string{p.Image}
	}
	p.Brand = extractBrand(sel)

	if soldOutRE.MatchString(sel.Text()) {
		p.Availability = prex.OutOfStock
	}

	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		text := strings.TrimSpace(opt.Text())
		if text == "" || placeholderRE.MatchString(text) {
			return
		}
		p.Variants = append(p.Variants, text)
	})

	return p
}

// extractName tries, in order: the shallowest heading with text longer
// than two characters, a name/title class selector, then the first short
// text block in an inline tag.
func extractName(sel *goquery.Selection) string {
	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		name := strings.TrimSpace(sel.Find(tag).First().Text())
		if len(name) > 2 {
			return name
		}
	}
	name := strings.TrimSpace(sel.Find(`[class*="name"], [class*="title"]`).First().Text())
	if len(name) > 2 {
		return name
	}
	found := ""
	sel.Find("span, p, a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) >= 5 && len(text) <= 100 && !priceHintRE.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	return found
}

// extractPrices collects price-like fragments from leaf elements.
// Fragments near was/retail wording become the original price; the first
// remaining fragment becomes the current price. A percent-off fragment
// anywhere in the container becomes the discount.
func extractPrices(sel *goquery.Selection, p *prex.Product) {
	var current, original string

	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if !priceHintRE.MatchString(text) {
			return
		}
		if wasPriceRE.MatchString(text) {
			if original == "" {
				original = text
			}
			return
		}
		if current == "" {
			current = text
		}
	})

	if current == "" && original == "" {
		// No leaf-level fragment, fall back to the container text.
		current = priceTextRE.FindString(sel.Text())
	}

	if current != "" {
		price := prex.ParsePrice(current)
		p.Price = price.Amount
		p.Currency = price.Currency
		p.PriceText = price.Text
	}
	if original != "" {
		if price := prex.ParsePrice(original); price.Parsed() {
			p.OriginalPrice = price.Amount
			if p.Currency == "" {
				p.Currency = price.Currency
			}
		}
	}

	p.Discount = strings.TrimSpace(discountRE.FindString(sel.Text()))
}

func extractImage(sel *goquery.Selection, baseURL string) string {
	img := sel.Find("img").First()
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if src, ok := img.Attr(attr); ok && src != "" {
			return prex.NormalizeURL(src, baseURL)
		}
	}
	return ""
}

func extractBrand(sel *goquery.Selection) string {
	brand := strings.TrimSpace(sel.Find(`[class*="brand"], [class*="designer"], [class*="maker"]`).First().Text())
	if brand != "" {
		return brand
	}
	return strings.TrimSpace(sel.Find("[data-brand]").AttrOr("data-brand", ""))
}
