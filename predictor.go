package prex

// CardFeatures summarizes the structural signals of a candidate product
// container. Feature extraction is DOM-library specific and lives in
// implementation packages; predictors only ever see this struct, which
// keeps them pure and trivially shareable across concurrent extractions.
type CardFeatures struct {
	HasImage   bool
	HasLink    bool
	HasHeading bool
	Class      string
	Text       string
}

// PricePrediction is a price predictor's output.
type PricePrediction struct {
	Price      Price
	Confidence float64
}

// BrandPrediction is a brand predictor's output.
type BrandPrediction struct {
	Brand      string
	Confidence float64
}

// Signals is the merged output of the signal predictors for one candidate.
// A nil member means the corresponding predictor abstained: it either was
// not active, failed, or did not reach its confidence floor. Abstention is
// never an error.
type Signals struct {
	CardScore *float64
	Price     *PricePrediction
	Brand     *BrandPrediction
}

// SignalSource runs signal predictors against a located product card and
// merges their non-abstaining outputs.
type SignalSource interface {
	// Predict evaluates all active predictors against the card.
	Predict(card CardFeatures) Signals

	// Active returns the number of active predictors. Enrichment is
	// skipped entirely when no predictors are active.
	Active() int
}

// CardLocator finds the container element for a product URL within a page
// and returns its features for predictor enrichment.
type CardLocator interface {
	// Locate returns the features of the card containing productURL.
	// The bool result is false when no matching container exists.
	Locate(html, productURL string) (CardFeatures, bool)
}
