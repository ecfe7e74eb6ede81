package mock

import "github.com/fwojciec/prex"

var _ prex.SignalSource = (*SignalSource)(nil)

// SignalSource is a mock implementation of prex.SignalSource.
type SignalSource struct {
	PredictFn func(card prex.CardFeatures) prex.Signals
	ActiveFn  func() int
}

func (s *SignalSource) Predict(card prex.CardFeatures) prex.Signals {
	return s.PredictFn(card)
}

func (s *SignalSource) Active() int {
	if s.ActiveFn == nil {
		return 1
	}
	return s.ActiveFn()
}

var _ prex.CardLocator = (*CardLocator)(nil)

// CardLocator is a mock implementation of prex.CardLocator.
type CardLocator struct {
	LocateFn func(html, productURL string) (prex.CardFeatures, bool)
}

func (l *CardLocator) Locate(html, productURL string) (prex.CardFeatures, bool) {
	return l.LocateFn(html, productURL)
}
