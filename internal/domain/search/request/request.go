package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchdemo/internal/domain"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	// DefaultLimit is the number of results every search asks for.
	DefaultLimit = 10
)

// Request is a validated search query. Built fresh for every attempt.
type Request struct {
	query      string
	searchMode mode.Mode
	limit      int
}

// New trims and validates the query. An empty mode means mode.Default.
func New(query string, m mode.Mode) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w (max %d chars)", domain.ErrQueryTooLong, MaxQueryLength)
	}
	if m == "" {
		m = mode.Default
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidMode, m)
	}

	return Request{
		query:      query,
		searchMode: m,
		limit:      DefaultLimit,
	}, nil
}

// Query returns the trimmed search text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum results to ask for.
func (r *Request) Limit() int { return r.limit }
