package search

import (
	"context"

	"github.com/kailas-cloud/searchdemo/internal/domain/search/request"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/result"
)

// Backend executes a search against the remote service.
type Backend interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
}
