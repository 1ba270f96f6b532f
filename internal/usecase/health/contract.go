package health

import (
	"context"

	"github.com/kailas-cloud/searchdemo/internal/domain"
)

// BackendChecker fetches the backend health document.
type BackendChecker interface {
	Health(ctx context.Context) (domain.BackendHealth, error)
}
