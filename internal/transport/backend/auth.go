package backend

import "net/http"

// exemptPaths are endpoints that never carry credentials.
var exemptPaths = map[string]struct{}{
	healthPath: {},
}

// bearerTransport adds an Authorization header to every non-exempt request.
// An empty token makes it a pass-through.
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.next.RoundTrip(r) //nolint:wrapcheck // RoundTripper must not wrap errors
	}
	if _, ok := exemptPaths[r.URL.Path]; ok {
		return t.next.RoundTrip(r) //nolint:wrapcheck // RoundTripper must not wrap errors
	}

	// RoundTrippers must not mutate the caller's request.
	r2 := r.Clone(r.Context())
	r2.Header.Set("Authorization", "Bearer "+t.token)
	return t.next.RoundTrip(r2) //nolint:wrapcheck // RoundTripper must not wrap errors
}
