package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prex"
)

var _ prex.NextPageResolver = (*NextPage)(nil)

// NextPage resolves the next listing page from pagination markup. It
// tries, in order: a rel=next link, an anchor with next-style text or
// class, then incrementing an existing page query parameter.
type NextPage struct{}

// NewNextPage creates a next-page resolver.
func NewNextPage() *NextPage {
	return &NextPage{}
}

var nextTexts = map[string]bool{
	"next":      true,
	"next page": true,
	"›":         true,
	"»":         true,
	"→":         true,
}

// ResolveNext returns the next page URL. The bool result is false when
// the page carries no recognizable pagination.
func (r *NextPage) ResolveNext(html, currentURL string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	if href, ok := doc.Find(`link[rel="next"], a[rel="next"]`).First().Attr("href"); ok && href != "" {
		return prex.NormalizeURL(href, currentURL), true
	}

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		class := strings.ToLower(a.AttrOr("class", ""))
		if !nextTexts[text] && !strings.Contains(class, "next") {
			return true
		}
		if href := a.AttrOr("href", ""); href != "" {
			next = prex.NormalizeURL(href, currentURL)
			return false
		}
		return true
	})
	if next != "" && next != currentURL {
		return next, true
	}

	u, err := url.Parse(currentURL)
	if err != nil {
		return "", false
	}
	q := u.Query()
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Set("page", strconv.Itoa(n+1))
			u.RawQuery = q.Encode()
			return u.String(), true
		}
	}
	return "", false
}
