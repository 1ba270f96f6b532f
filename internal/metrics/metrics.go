package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Client-side Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchdemo",
			Name:      "backend_requests_total",
			Help:      "Total number of requests sent to the search backend",
		},
		[]string{"method", "endpoint", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchdemo",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchdemo",
			Name:      "searches_total",
			Help:      "Search attempts by mode and outcome",
		},
		[]string{"mode", "outcome"}, // ok, error, empty_query, dropped
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchdemo",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration as seen by the client",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchdemo",
			Name:      "notifications_total",
			Help:      "Notifications shown to the user by severity",
		},
		[]string{"severity"},
	)

	BackendHealthy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "searchdemo",
			Name:      "backend_healthy",
			Help:      "1 if the last health probe reported the backend healthy, else 0",
		},
	)
)

// Search outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeError      = "error"
	OutcomeEmptyQuery = "empty_query"
	OutcomeDropped    = "dropped"
)

// Register registers all client metrics on reg. Safe to call more than once.
func Register(reg prometheus.Registerer) error {
	if err := registerOrReuse(reg, &BackendRequestsTotal); err != nil {
		return err
	}
	if err := registerOrReuse(reg, &BackendRequestDuration); err != nil {
		return err
	}
	if err := registerOrReuse(reg, &SearchesTotal); err != nil {
		return err
	}
	if err := registerOrReuse(reg, &SearchDuration); err != nil {
		return err
	}
	if err := registerOrReuse(reg, &NotificationsTotal); err != nil {
		return err
	}
	return registerOrReuse(reg, &BackendHealthy)
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("searchdemo: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("searchdemo: register metric: %w", err)
	}
	return nil
}
