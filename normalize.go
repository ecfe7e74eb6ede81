package prex

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Price holds the result of parsing a price string. A nil Amount means the
// text did not contain a recognizable price; callers must treat that as
// "could not parse", never as zero.
type Price struct {
	Amount   *float64
	Currency string
	Text     string
}

// Parsed reports whether an amount was extracted.
func (p Price) Parsed() bool { return p.Amount != nil }

// currencyCodes maps currency symbols to ISO codes. Three-letter codes pass
// through unchanged.
var currencyCodes = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY",
	"USD": "USD", "EUR": "EUR", "GBP": "GBP", "JPY": "JPY",
}

// Price extraction patterns, tried in order. The amount group allows
// thousands separators which are stripped before parsing.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([$€£¥])\s?(\d+(?:,\d{3})*(?:\.\d{2})?)`),          // $123.45
	regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s?([$€£¥])`),          // 123.45$
	regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s?(USD|EUR|GBP|JPY)`), // 123.45 USD
}

var (
	spaceRE      = regexp.MustCompile(`\s+`)
	priceLabelRE = regexp.MustCompile(`(?i)(was|now|sale|price)[:;]?\s*`)
	perItemRE    = regexp.MustCompile(`(?i)\s*(each|per\s+item)\s*`)
)

// NormalizeURL resolves a possibly-relative URL against a base. URLs that
// already carry an http(s) scheme pass through unchanged. Empty input
// returns an empty string; malformed input degrades to empty rather than
// erroring.
func NormalizeURL(raw, base string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}

// ExtractDomain returns the scheme://host portion of a URL, or an empty
// string if the URL is unparsable.
func ExtractDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// CleanPriceText collapses whitespace and strips common price labels
// ("was", "now", "each") that would otherwise confuse pattern matching.
func CleanPriceText(text string) string {
	if text == "" {
		return ""
	}
	text = spaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
	text = priceLabelRE.ReplaceAllString(text, "")
	text = perItemRE.ReplaceAllString(text, "")
	return text
}

// ParsePrice extracts an amount and currency from free text. Patterns are
// applied in order and the first one that parses to a finite number wins.
// When no pattern matches, only Text is populated.
func ParsePrice(text string) Price {
	result := Price{Text: text}
	if text == "" {
		return result
	}

	cleaned := CleanPriceText(text)

	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}

		var amountStr, currencyStr string
		if _, ok := currencyCodes[m[1]]; ok {
			currencyStr, amountStr = m[1], m[2]
		} else {
			amountStr, currencyStr = m[1], m[2]
		}

		amount, err := strconv.ParseFloat(strings.ReplaceAll(amountStr, ",", ""), 64)
		if err != nil {
			continue
		}

		result.Amount = &amount
		if code, ok := currencyCodes[currencyStr]; ok {
			result.Currency = code
		} else {
			result.Currency = currencyStr
		}
		return result
	}

	return result
}
