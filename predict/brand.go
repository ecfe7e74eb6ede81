package predict

import (
	"strings"

	"github.com/fwojciec/prex"
)

var _ BrandPredictor = (*Brand)(nil)

// Brand matches known brand names in free text. Matching is
// case-insensitive with confidence bonuses for exact casing, a match at
// the start of the text, and an attribution word just before the match.
type Brand struct {
	threshold float64
	brands    []string
}

// NewBrand creates a brand predictor with the given confidence floor.
// When no brands are supplied the default list is used.
func NewBrand(threshold float64, brands ...string) *Brand {
	if len(brands) == 0 {
		brands = DefaultBrands()
	}
	return &Brand{threshold: prex.ClampConfidence(threshold), brands: brands}
}

// Name returns the predictor's identifier.
func (b *Brand) Name() string { return "brand" }

// DefaultBrands returns the built-in brand vocabulary.
func DefaultBrands() []string {
	return []string{
		"Gucci", "Prada", "Louis Vuitton", "Chanel", "Hermès", "Dior",
		"Versace", "Armani", "Burberry", "Fendi", "Balenciaga", "Givenchy",
		"Valentino", "Saint Laurent", "Bottega Veneta", "Dolce & Gabbana",
		"Tom Ford", "Moncler", "Cartier", "Rolex", "Omega", "Tiffany",
	}
}

// brandContextWords are attribution phrases that raise confidence when
// they appear anywhere in the text alongside a brand mention.
var brandContextWords = []string{"by ", "from ", "collection", "designer"}

// PredictBrand returns the best-scoring brand mention in text. Base
// confidence is 0.8, +0.1 for an exact-case match, +0.1 when the mention
// starts the text, +0.05 for an attribution word in the text. Ties prefer
// the longer brand name.
func (b *Brand) PredictBrand(text string) (prex.BrandPrediction, bool) {
	if strings.TrimSpace(text) == "" {
		return prex.BrandPrediction{}, false
	}
	lower := strings.ToLower(text)

	var best prex.BrandPrediction
	found := false

	for _, brand := range b.brands {
		idx := strings.Index(lower, strings.ToLower(brand))
		if idx < 0 {
			continue
		}

		conf := 0.8
		if strings.Contains(text, brand) {
			conf += 0.1
		}
		if idx == 0 {
			conf += 0.1
		}
		for _, w := range brandContextWords {
			if strings.Contains(lower, w) {
				conf += 0.05
				break
			}
		}
		conf = prex.ClampConfidence(conf)

		better := conf > best.Confidence ||
			(conf == best.Confidence && len(brand) > len(best.Brand))
		if !found || better {
			best = prex.BrandPrediction{Brand: brand, Confidence: conf}
			found = true
		}
	}

	if !found || best.Confidence < b.threshold {
		return prex.BrandPrediction{}, false
	}
	return best, true
}
