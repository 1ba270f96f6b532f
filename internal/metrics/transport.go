package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// knownEndpoints bounds the endpoint label to the backend API surface.
var knownEndpoints = map[string]struct{}{
	"/api/health": {},
	"/api/search": {},
}

// Transport records backend request duration and count around next.
// A nil next means http.DefaultTransport.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &instrumentedTransport{next: next}
}

type instrumentedTransport struct {
	next http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(r)

	duration := time.Since(start).Seconds()
	endpoint := normalizePath(r.URL.Path)
	status := "transport_error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	BackendRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
	BackendRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()

	return resp, err //nolint:wrapcheck // RoundTripper must not wrap errors
}

// normalizePath normalizes paths to prevent high cardinality in metrics labels.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if _, ok := knownEndpoints[path]; ok {
		return path
	}
	return "other"
}
