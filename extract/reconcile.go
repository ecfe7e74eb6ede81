package extract

import "github.com/fwojciec/prex"

// reconcile resolves the contested fields (price, brand) between a merged
// extractor candidate and the signal predictions, recording which source
// won each field. With no signals this is a plain promotion of the
// candidate into a reconciled record.
func (p *Pipeline) reconcile(candidate *prex.Product, sig prex.Signals) *prex.Reconciled {
	rec := &prex.Reconciled{Product: *candidate.Clone()}
	rec.FieldSources = make(map[string]prex.Source)

	if rec.Has(prex.FieldPrice) {
		rec.FieldSources[prex.FieldPrice] = candidate.Source
	}
	if rec.Has(prex.FieldBrand) {
		rec.FieldSources[prex.FieldBrand] = candidate.Source
	}

	if sig.Price != nil && p.signalWins(sig.Price.Confidence) {
		if amount := sig.Price.Price.Amount; amount != nil {
			v := *amount
			rec.Price = &v
			rec.PriceText = sig.Price.Price.Text
			if sig.Price.Price.Currency != "" {
				rec.Currency = sig.Price.Price.Currency
			}
			rec.FieldSources[prex.FieldPrice] = prex.SourceSignal
			rec.SetConfidence(prex.FieldPrice, sig.Price.Confidence)
		}
	}

	if sig.Brand != nil && p.signalWins(sig.Brand.Confidence) {
		if sig.Brand.Brand != "" {
			rec.Brand = sig.Brand.Brand
			rec.FieldSources[prex.FieldBrand] = prex.SourceSignal
			rec.SetConfidence(prex.FieldBrand, sig.Brand.Confidence)
		}
	}

	if len(rec.FieldSources) == 0 {
		rec.FieldSources = nil
	}
	return rec
}

// signalWins reports whether a signal prediction overrides the extractor
// value under the configured policy. PolicyWeighted compares against the
// confidence threshold; PolicyConfidence compares against the baseline
// confidence assumed for non-signal sources. PolicyMajority resolves like
// PolicyWeighted.
func (p *Pipeline) signalWins(conf float64) bool {
	if p.cfg.Policy == prex.PolicyConfidence {
		return conf > p.cfg.SourceBaseline
	}
	return conf >= p.cfg.ConfidenceThreshold
}
