package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/domain"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/request"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/searchdemo/internal/logger"
	"github.com/kailas-cloud/searchdemo/internal/metrics"
	"github.com/kailas-cloud/searchdemo/internal/version"
)

const (
	healthPath = "/api/health"
	searchPath = "/api/search"

	// maxResponseBytes caps how much of a backend body is read.
	maxResponseBytes = 8 << 20
	// maxErrorBodyBytes caps the body excerpt kept in a StatusError.
	maxErrorBodyBytes = 512
)

// Client talks to the search backend over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
}

// Config holds the backend client settings.
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	// Timeout bounds each request; 0 leaves it to the transport.
	Timeout time.Duration
	// Transport is the base round tripper (nil = http.DefaultTransport).
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// NewClient creates a backend client. Requests are instrumented with
// Prometheus metrics and carry the API key when one is configured.
func NewClient(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: userAgent,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &bearerTransport{token: cfg.APIKey, next: metrics.Transport(base)},
		},
		logger: logger,
	}
}

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (domain.BackendHealth, error) {
	var dto healthResponseDTO
	if err := c.do(ctx, http.MethodGet, healthPath, nil, &dto); err != nil {
		return domain.BackendHealth{}, fmt.Errorf("health: %w", err)
	}
	return healthFromDTO(&dto), nil
}

// Search calls POST /api/search with {query, mode, limit}.
func (c *Client) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	var dto searchResponseDTO
	if err := c.do(ctx, http.MethodPost, searchPath, searchRequestToDTO(req), &dto); err != nil {
		return result.Response{}, fmt.Errorf("search: %w", err)
	}
	return searchResponseFromDTO(&dto), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	requestID := uuid.NewString()
	ctx, log := logpkg.With(ctx, c.logger,
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("backend request failed", zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug("backend response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return domain.NewStatusError(resp.StatusCode, errorDetail(excerpt))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidResponse)
		}
		return fmt.Errorf("%w: %w", domain.ErrInvalidResponse, err)
	}
	return nil
}

// errorDetail extracts the "detail" field from a JSON error body, falling back to the raw text.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != nil {
		if s, ok := parsed.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(parsed.Detail); err == nil {
			return string(b)
		}
	}
	return strings.TrimSpace(string(body))
}
