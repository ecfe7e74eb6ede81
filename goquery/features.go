package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prex"
)

var _ prex.CardLocator = (*Locator)(nil)

// Locator finds the card container for a product URL so signal
// predictors can score the product in its surrounding context.
type Locator struct{}

// NewLocator creates a card locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate finds the anchor pointing at productURL and climbs to the
// nearest container that looks like a card (holds an image or carries a
// product-ish class). Returns false when no anchor matches.
func (l *Locator) Locate(html, productURL string) (prex.CardFeatures, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return prex.CardFeatures{}, false
	}

	var anchor *goquery.Selection
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if href == "" {
			return true
		}
		if href == productURL || (strings.HasPrefix(href, "/") && strings.HasSuffix(productURL, href)) {
			anchor = a
			return false
		}
		return true
	})
	if anchor == nil {
		return prex.CardFeatures{}, false
	}

	sel := anchor
	for i := 0; i < 4; i++ {
		parent := sel.Parent()
		if parent.Length() == 0 {
			break
		}
		if isCardLike(parent) {
			return cardFeatures(parent), true
		}
		sel = parent
	}
	// No obvious card ancestor, fall back to the immediate parent.
	if p := anchor.Parent(); p.Length() > 0 {
		return cardFeatures(p), true
	}
	return cardFeatures(anchor), true
}

func isCardLike(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "div", "li", "article", "section":
	default:
		return false
	}
	if sel.Find("img").Length() > 0 {
		return true
	}
	class := strings.ToLower(sel.AttrOr("class", ""))
	for _, hint := range productClassHints {
		if strings.Contains(class, hint) {
			return true
		}
	}
	return false
}

// cardFeatures summarizes a container for the signal predictors.
func cardFeatures(sel *goquery.Selection) prex.CardFeatures {
	return prex.CardFeatures{
		HasImage:   sel.Find("img").Length() > 0,
		HasLink:    sel.Find("a[href]").Length() > 0,
		HasHeading: sel.Find("h1, h2, h3, h4, h5, h6").Length() > 0,
		Class:      sel.AttrOr("class", ""),
		Text:       strings.Join(strings.Fields(sel.Text()), " "),
	}
}
