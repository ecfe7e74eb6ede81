package crawl

import (
	"net/url"
	"regexp"

	"github.com/fwojciec/prex"
)

// Path shapes common across storefront platforms. A slug after a
// product-ish segment marks a detail page; a category-ish segment marks
// a listing.
var (
	detailPathRE   = regexp.MustCompile(`(?i)/(products?|items?|p|dp)/[^/]+`)
	categoryPathRE = regexp.MustCompile(`(?i)/(collections?|categor(?:y|ies))(/|$)`)
	listingPathRE  = regexp.MustCompile(`(?i)/(products?|shop|catalog|sale)/?$`)
)

// DetectPageKind classifies a URL as a listing page, a detail page, or
// unknown, from its path shape and query parameters.
func DetectPageKind(rawURL string) prex.PageKind {
	u, err := url.Parse(rawURL)
	if err != nil {
		return prex.PageUnknown
	}
	if detailPathRE.MatchString(u.Path) {
		return prex.PageDetail
	}
	if categoryPathRE.MatchString(u.Path) || listingPathRE.MatchString(u.Path) || u.Query().Get("page") != "" {
		return prex.PageListing
	}
	return prex.PageUnknown
}
