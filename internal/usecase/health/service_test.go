package health

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/searchdemo/internal/domain"
	"github.com/kailas-cloud/searchdemo/internal/metrics"
)

// --- Mocks ---

type mockBackend struct {
	health domain.BackendHealth
	err    error
}

func (m *mockBackend) Health(_ context.Context) (domain.BackendHealth, error) {
	return m.health, m.err
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockBackend{health: domain.BackendHealth{
		Status:        "healthy",
		DocumentCount: intPtr(100),
		KeywordReady:  boolPtr(true),
		VectorReady:   boolPtr(true),
	}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Ready {
		t.Errorf("expected %q, got %q", Ready, r.Status)
	}
	if r.Checks["backend"] != CheckOK {
		t.Errorf("expected backend %q, got %q", CheckOK, r.Checks["backend"])
	}
	if r.Checks["keyword_search"] != CheckOK || r.Checks["vector_search"] != CheckOK {
		t.Errorf("unexpected component checks: %v", r.Checks)
	}
	if r.Documents == nil || *r.Documents != 100 {
		t.Errorf("Documents = %v", r.Documents)
	}
	if r.Err != nil {
		t.Errorf("unexpected Err: %v", r.Err)
	}
	if testutil.ToFloat64(metrics.BackendHealthy) != 1 {
		t.Error("backend_healthy gauge should be 1")
	}
}

func TestCheck_UnhealthyStatus(t *testing.T) {
	svc := New(&mockBackend{health: domain.BackendHealth{Status: "degraded"}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Error {
		t.Errorf("expected %q, got %q", Error, r.Status)
	}
	if r.Checks["backend"] != CheckError {
		t.Errorf("expected backend %q, got %q", CheckError, r.Checks["backend"])
	}
	if _, ok := r.Checks["vector_search"]; ok {
		t.Error("vector_search check should be absent when not reported")
	}
	if testutil.ToFloat64(metrics.BackendHealthy) != 0 {
		t.Error("backend_healthy gauge should be 0")
	}
}

func TestCheck_ProbeFailure(t *testing.T) {
	svc := New(&mockBackend{err: errors.New("conn refused")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Error {
		t.Errorf("expected %q, got %q", Error, r.Status)
	}
	if r.Err == nil {
		t.Error("expected Err to be set")
	}
}

func TestCheck_ComponentNotReady(t *testing.T) {
	svc := New(&mockBackend{health: domain.BackendHealth{
		Status:      "healthy",
		VectorReady: boolPtr(false),
	}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Ready {
		t.Errorf("component readiness must not change overall status, got %q", r.Status)
	}
	if r.Checks["vector_search"] != CheckError {
		t.Errorf("expected vector_search %q, got %q", CheckError, r.Checks["vector_search"])
	}
}

func TestStatus_Class(t *testing.T) {
	tests := map[Status]string{
		Ready:    "status-ready",
		Error:    "status-error",
		Checking: "status-checking",
	}
	for s, want := range tests {
		if got := s.Class(); got != want {
			t.Errorf("%q.Class() = %q, want %q", s, got, want)
		}
	}
}
