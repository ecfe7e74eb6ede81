package prex

// Policy selects how the ensemble resolves disagreements between signal
// predictors and the structured/heuristic extractors.
type Policy string

// Voting policies.
//
// PolicyWeighted prefers a signal value when its confidence clears the
// configured threshold. PolicyConfidence compares the signal confidence
// against a fixed baseline assumed for non-signal sources. PolicyMajority
// is accepted for compatibility and currently resolves like PolicyWeighted.
const (
	PolicyMajority   Policy = "majority"
	PolicyWeighted   Policy = "weighted"
	PolicyConfidence Policy = "confidence"
)

// ParsePolicy converts a string into a Policy. Unknown values are an
// EINVALID error so that illegal policies fail at construction time.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyMajority, PolicyWeighted, PolicyConfidence:
		return Policy(s), nil
	}
	return "", Errorf(EINVALID, "unknown ensemble policy %q", s)
}

// Default confidence floors.
const (
	DefaultConfidenceThreshold = 0.7
	DefaultPriceThreshold      = 0.8
	DefaultBrandThreshold      = 0.7
	DefaultSourceBaseline      = 0.7
)

// Config holds all pipeline tuning knobs. The zero value is not usable;
// start from DefaultConfig and override.
type Config struct {
	// Policy is the ensemble voting policy.
	Policy Policy

	// ConfidenceThreshold is the floor a signal prediction must clear to
	// override a structured/heuristic value under PolicyWeighted. It is
	// also the card predictor's acceptance floor.
	ConfidenceThreshold float64

	// PriceThreshold and BrandThreshold are the acceptance floors of the
	// price and brand predictors.
	PriceThreshold float64
	BrandThreshold float64

	// SourceBaseline is the confidence assumed for non-signal sources
	// under PolicyConfidence. The 0.7 default is a heuristic, not
	// measured, so it is a knob rather than a constant.
	SourceBaseline float64

	// QualityThreshold is the minimum quality score for a record to
	// appear in listing output. Detail extraction is never filtered.
	QualityThreshold float64

	// RequiredFields are the fields a product must carry to be valid.
	RequiredFields []string

	// MaxPrice is the largest plausible price; larger values are flagged.
	MaxPrice float64
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Policy:              PolicyWeighted,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		PriceThreshold:      DefaultPriceThreshold,
		BrandThreshold:      DefaultBrandThreshold,
		SourceBaseline:      DefaultSourceBaseline,
		QualityThreshold:    DefaultQualityThreshold,
		RequiredFields:      DefaultRequiredFields(),
		MaxPrice:            DefaultMaxPrice,
	}
}

// Validate returns an EINVALID error for out-of-range thresholds or an
// unknown policy. Configuration errors surface at pipeline construction,
// never during extraction.
func (c *Config) Validate() error {
	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"confidence threshold": c.ConfidenceThreshold,
		"price threshold":      c.PriceThreshold,
		"brand threshold":      c.BrandThreshold,
		"source baseline":      c.SourceBaseline,
		"quality threshold":    c.QualityThreshold,
	} {
		if v < 0 || v > 1 {
			return Errorf(EINVALID, "%s %v outside [0, 1]", name, v)
		}
	}
	if c.MaxPrice <= 0 {
		return Errorf(EINVALID, "max price must be positive")
	}
	return nil
}
