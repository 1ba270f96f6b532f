package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/metrics"
)

// Status is the value shown by the status indicator.
type Status string

const (
	// Checking is shown until the first probe completes.
	Checking Status = "Checking..."
	// Ready indicates the backend reported itself healthy.
	Ready Status = "Ready"
	// Error indicates an unhealthy backend or a failed probe.
	Error Status = "Error"
)

// Class returns the indicator style class for the status.
func (s Status) Class() string {
	switch s {
	case Ready:
		return "status-ready"
	case Error:
		return "status-error"
	default:
		return "status-checking"
	}
}

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates the probe outcome.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// Documents is the indexed document count, when reported.
	Documents *int
	// Err is the probe failure, if any. Never fatal to the caller.
	Err error
}

// Service runs the health probe.
type Service struct {
	backend BackendChecker
	logger  *zap.Logger
}

// New creates a Service. logger can be nil.
func New(backend BackendChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// Check probes the backend once. Status is Ready only when the backend
// answers with status "healthy"; any other answer or failure yields Error.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	h, err := s.backend.Health(ctx)
	if err != nil {
		s.logger.Warn("health probe failed", zap.Error(err))
		checks["backend"] = CheckError
		metrics.BackendHealthy.Set(0)
		return Report{Status: Error, Checks: checks, Err: err}
	}

	status := Error
	checks["backend"] = CheckError
	if h.Healthy() {
		status = Ready
		checks["backend"] = CheckOK
	}
	if h.KeywordReady != nil {
		checks["keyword_search"] = checkOf(*h.KeywordReady)
	}
	if h.VectorReady != nil {
		checks["vector_search"] = checkOf(*h.VectorReady)
	}

	if status == Ready {
		metrics.BackendHealthy.Set(1)
	} else {
		metrics.BackendHealthy.Set(0)
		s.logger.Warn("backend reported unhealthy", zap.String("status", h.Status))
	}

	return Report{Status: status, Checks: checks, Documents: h.DocumentCount}
}

func checkOf(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
