// Package predict provides rule-based signal predictors for product
// extraction. Each predictor is stateless, safe for concurrent use, and
// emits a value plus a confidence in [0, 1]; a prediction below the
// predictor's confidence floor is an abstention, not an error.
package predict

import "github.com/fwojciec/prex"

// Predictor is the capability marker implemented by all signal predictors.
// The ensemble dispatches on the capability interfaces below rather than
// on concrete types.
type Predictor interface {
	Name() string
}

// CardScorer estimates whether a container element is a product card.
type CardScorer interface {
	Predictor

	// ScoreCard returns a product-likelihood score in [0, 1].
	// The bool result is false when the score is below the floor.
	ScoreCard(f prex.CardFeatures) (float64, bool)
}

// PricePredictor extracts the most likely price from free text.
type PricePredictor interface {
	Predictor

	// PredictPrice returns the best price match and its confidence.
	// The bool result is false on abstention.
	PredictPrice(text string) (prex.PricePrediction, bool)
}

// BrandPredictor extracts the most likely brand from free text.
type BrandPredictor interface {
	Predictor

	// PredictBrand returns the best brand match and its confidence.
	// The bool result is false on abstention.
	PredictBrand(text string) (prex.BrandPrediction, bool)
}
