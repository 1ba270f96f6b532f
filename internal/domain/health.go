package domain

// HealthyStatus is the backend status value that means the service is usable.
const HealthyStatus = "healthy"

// BackendHealth is the decoded body of the backend health endpoint.
// Readiness fields are optional; nil means the backend did not report them.
type BackendHealth struct {
	Status        string
	DocumentCount *int
	KeywordReady  *bool
	VectorReady   *bool
}

// Healthy reports whether the backend declared itself healthy.
func (h BackendHealth) Healthy() bool { return h.Status == HealthyStatus }
