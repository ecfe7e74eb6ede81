package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/prex"
)

// Ensure LoggingPipeline implements prex.Pipeline.
var _ prex.Pipeline = (*LoggingPipeline)(nil)

// LoggingPipeline wraps a Pipeline with debug logging for extraction runs.
type LoggingPipeline struct {
	next   prex.Pipeline
	logger *slog.Logger
}

// NewLoggingPipeline creates a new LoggingPipeline.
func NewLoggingPipeline(next prex.Pipeline, logger *slog.Logger) *LoggingPipeline {
	return &LoggingPipeline{next: next, logger: logger}
}

// ExtractListing delegates to the wrapped pipeline and logs the result count.
func (p *LoggingPipeline) ExtractListing(html, baseURL string) (recs []*prex.Reconciled, err error) {
	defer func(begin time.Time) {
		p.logger.Info("listing extraction",
			"url", baseURL,
			"bytes", len(html),
			"products", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ExtractListing(html, baseURL)
}

// ExtractDetail delegates to the wrapped pipeline and logs the quality verdict.
func (p *LoggingPipeline) ExtractDetail(html, baseURL string) (rec *prex.Reconciled, err error) {
	defer func(begin time.Time) {
		quality := 0.0
		valid := false
		if rec != nil {
			quality = rec.QualityScore
			valid = rec.Valid
		}
		p.logger.Info("detail extraction",
			"url", baseURL,
			"quality", quality,
			"valid", valid,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ExtractDetail(html, baseURL)
}

// Stats delegates to the wrapped pipeline.
func (p *LoggingPipeline) Stats() prex.ExtractionStats {
	return p.next.Stats()
}
