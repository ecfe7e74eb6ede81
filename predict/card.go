package predict

import (
	"regexp"
	"strings"

	"github.com/fwojciec/prex"
)

var _ CardScorer = (*Card)(nil)

// Card scores how likely a container element is to be a product card,
// using a weighted sum of structural signals out of 100.
type Card struct {
	threshold float64
}

// NewCard creates a card scorer with the given acceptance floor.
func NewCard(threshold float64) *Card {
	return &Card{threshold: prex.ClampConfidence(threshold)}
}

// Name returns the predictor's identifier.
func (c *Card) Name() string { return "card" }

var cardPriceHints = []*regexp.Regexp{
	regexp.MustCompile(`[$€£¥]\s?\d`),
	regexp.MustCompile(`\d+\.\d{2}`),
	regexp.MustCompile(`price`),
	regexp.MustCompile(`cost`),
}

var (
	productClassHints = []string{"product", "item", "card", "listing", "tile"}
	navClassHints     = []string{"nav", "footer", "header", "menu", "breadcrumb"}
)

// ScoreCard computes the weighted likelihood that f describes a product
// card: +25 image, +20 link, +15 price hint in text, +10 product-ish class,
// +10 heading, -20 nav-ish class, floored at 0 and normalized by 100.
func (c *Card) ScoreCard(f prex.CardFeatures) (float64, bool) {
	score := 0.0

	if f.HasImage {
		score += 25
	}
	if f.HasLink {
		score += 20
	}

	text := strings.ToLower(f.Text)
	for _, re := range cardPriceHints {
		if re.MatchString(text) {
			score += 15
			break
		}
	}

	class := strings.ToLower(f.Class)
	for _, hint := range productClassHints {
		if strings.Contains(class, hint) {
			score += 10
			break
		}
	}

	if f.HasHeading {
		score += 10
	}

	for _, hint := range navClassHints {
		if strings.Contains(class, hint) {
			score -= 20
			break
		}
	}

	if score < 0 {
		score = 0
	}
	confidence := prex.ClampConfidence(score / 100)

	return confidence, confidence >= c.threshold
}
