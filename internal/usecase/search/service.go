package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/domain/search/request"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/result"
)

// Service sends validated search requests to the backend and observes them.
type Service struct {
	backend Backend
	obs     *observer
}

// New creates a search service. logger can be nil.
func New(backend Backend, logger *zap.Logger) *Service {
	return &Service{backend: backend, obs: &observer{logger: logger}}
}

// Search executes one request. No retries: a failure is returned as is.
func (s *Service) Search(ctx context.Context, req *request.Request) (_ result.Response, err error) {
	start := time.Now()
	hits := 0
	defer func() { s.obs.observe(req.Mode(), start, hits, err) }()

	resp, err := s.backend.Search(ctx, req)
	if err != nil {
		return result.Response{}, fmt.Errorf("search %s: %w", req.Mode(), err)
	}
	if resp.Results == nil {
		resp.Results = []result.Result{}
	}
	hits = len(resp.Results)
	return resp, nil
}
