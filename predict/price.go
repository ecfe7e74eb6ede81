package predict

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/prex"
)

var _ PricePredictor = (*Price)(nil)

// Price extracts prices from free text with pattern-specific base
// confidences adjusted by the words surrounding each match.
type Price struct {
	threshold float64
}

// NewPrice creates a price predictor with the given confidence floor.
func NewPrice(threshold float64) *Price {
	return &Price{threshold: prex.ClampConfidence(threshold)}
}

// Name returns the predictor's identifier.
func (p *Price) Name() string { return "price" }

// pricePattern pairs a regexp having exactly two capture groups with its
// base confidence. symFirst marks patterns whose first group is the
// currency indicator rather than the amount.
type pricePattern struct {
	re       *regexp.Regexp
	base     float64
	symFirst bool
}

var predPricePatterns = []pricePattern{
	{regexp.MustCompile(`([$€£¥])\s?(\d+(?:,\d{3})*(?:\.\d{2})?)`), 0.9, true},
	{regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s?([$€£¥])`), 0.8, false},
	{regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s?(USD|EUR|GBP|JPY|CAD|AUD)`), 0.85, false},
	{regexp.MustCompile(`(?i)(?:sale|now|price)[:;]?\s*([$€£¥])\s?(\d+(?:,\d{3})*(?:\.\d{2})?)`), 0.95, true},
	{regexp.MustCompile(`(?i)from\s+([$€£¥])\s?(\d+(?:,\d{3})*(?:\.\d{2})?)`), 0.9, true},
}

var predCurrencies = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY",
	"USD": "USD", "EUR": "EUR", "GBP": "GBP",
	"JPY": "JPY", "CAD": "CAD", "AUD": "AUD",
}

var (
	positiveContext = []string{"price", "cost", "sale", "now", "was", "retail", "msrp"}
	negativeContext = []string{"id", "code", "zip", "phone", "year", "quantity", "qty"}
)

// PredictPrice scans text with all patterns and returns the highest
// confidence match. Confidence starts at the pattern's base and is
// adjusted by the 20 characters on either side of the match: a positive
// context word adds 0.1, a negative one subtracts 0.2.
func (p *Price) PredictPrice(text string) (prex.PricePrediction, bool) {
	if strings.TrimSpace(text) == "" {
		return prex.PricePrediction{}, false
	}

	var best prex.PricePrediction
	found := false

	for _, pat := range predPricePatterns {
		for _, loc := range pat.re.FindAllStringSubmatchIndex(text, -1) {
			g1 := text[loc[2]:loc[3]]
			g2 := text[loc[4]:loc[5]]

			var currencyStr, amountStr string
			if pat.symFirst {
				currencyStr, amountStr = g1, g2
			} else {
				amountStr, currencyStr = g1, g2
			}

			amount, err := strconv.ParseFloat(strings.ReplaceAll(amountStr, ",", ""), 64)
			if err != nil {
				continue
			}

			conf := prex.ClampConfidence(pat.base + contextAdjustment(text, loc[0], loc[1]))
			if found && conf <= best.Confidence {
				continue
			}

			best = prex.PricePrediction{
				Price: prex.Price{
					Amount:   &amount,
					Currency: predCurrencies[currencyStr],
					Text:     text[loc[0]:loc[1]],
				},
				Confidence: conf,
			}
			found = true
		}
	}

	if !found || best.Confidence < p.threshold {
		return prex.PricePrediction{}, false
	}
	return best, true
}

func contextAdjustment(text string, start, end int) float64 {
	lo := start - 20
	if lo < 0 {
		lo = 0
	}
	hi := end + 20
	if hi > len(text) {
		hi = len(text)
	}
	window := strings.ToLower(text[lo:hi])

	adj := 0.0
	for _, w := range positiveContext {
		if strings.Contains(window, w) {
			adj += 0.1
			break
		}
	}
	for _, w := range negativeContext {
		if strings.Contains(window, w) {
			adj -= 0.2
			break
		}
	}
	return adj
}
