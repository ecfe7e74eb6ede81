package predict

import "github.com/fwojciec/prex"

var _ prex.SignalSource = (*Ensemble)(nil)

// Ensemble merges the outputs of a set of predictors into a single
// prex.Signals value. It dispatches on the capability interfaces so a
// single predictor may contribute more than one signal. When several
// predictors share a capability the highest confidence wins.
type Ensemble struct {
	predictors []Predictor
}

// NewEnsemble creates an ensemble over the given predictors. An empty
// ensemble is valid and always abstains.
func NewEnsemble(predictors ...Predictor) *Ensemble {
	return &Ensemble{predictors: predictors}
}

// FromConfig builds the standard card, price and brand ensemble with the
// thresholds carried by cfg.
func FromConfig(cfg prex.Config) *Ensemble {
	return NewEnsemble(
		NewCard(cfg.ConfidenceThreshold),
		NewPrice(cfg.PriceThreshold),
		NewBrand(cfg.BrandThreshold),
	)
}

// Predict evaluates every predictor against the card. Abstentions leave
// the corresponding signal nil.
func (e *Ensemble) Predict(card prex.CardFeatures) prex.Signals {
	var s prex.Signals

	for _, p := range e.predictors {
		if cs, ok := p.(CardScorer); ok {
			if score, ok := cs.ScoreCard(card); ok {
				if s.CardScore == nil || score > *s.CardScore {
					s.CardScore = &score
				}
			}
		}
		if pp, ok := p.(PricePredictor); ok {
			if pred, ok := pp.PredictPrice(card.Text); ok {
				if s.Price == nil || pred.Confidence > s.Price.Confidence {
					s.Price = &pred
				}
			}
		}
		if bp, ok := p.(BrandPredictor); ok {
			if pred, ok := bp.PredictBrand(card.Text); ok {
				if s.Brand == nil || pred.Confidence > s.Brand.Confidence {
					s.Brand = &pred
				}
			}
		}
	}

	return s
}

// Active returns the number of predictors in the ensemble.
func (e *Ensemble) Active() int { return len(e.predictors) }
