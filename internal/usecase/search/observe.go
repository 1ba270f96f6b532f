package search

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/metrics"
)

// observer provides logging and metrics for search operations.
type observer struct {
	logger *zap.Logger
}

func (o *observer) observe(m mode.Mode, start time.Time, hits int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.SearchesTotal.WithLabelValues(string(m), outcome).Inc()
	metrics.SearchDuration.WithLabelValues(string(m)).Observe(dur.Seconds())

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("search failed",
			zap.String("mode", string(m)),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}
	o.logger.Debug("search completed",
		zap.String("mode", string(m)),
		zap.Duration("duration", dur),
		zap.Int("hits", hits),
	)
}
