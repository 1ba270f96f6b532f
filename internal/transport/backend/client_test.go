package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/domain"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/request"
)

func newTestClient(t *testing.T, r http.Handler, apiKey string) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(&Config{
		BaseURL: srv.URL + "/",
		APIKey:  apiKey,
		Logger:  zap.NewNop(),
	})
}

func mustRequest(t *testing.T, q string, m mode.Mode) *request.Request {
	t.Helper()
	req, err := request.New(q, m)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func TestClient_Search(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/search", func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "searchdemo/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}

		var body searchRequestDTO
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if body.Query != "python programming" || body.Mode != "vector" || body.Limit != 10 {
			t.Errorf("body = %+v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"id": 3, "title": "Python", "content": "Python is...", "highlighted_content": "<mark>python</mark> is...",
				 "category": "Programming", "tags": ["python", "language"], "score": 0.8234},
				{"id": "doc-9", "title": "Go", "content": "Go is...", "category": "Programming", "tags": null, "score": 0.5}
			],
			"total_results": 2,
			"query": "python programming",
			"mode": "vector",
			"search_time_ms": 12.34
		}`))
	})

	c := newTestClient(t, r, "")
	resp, err := c.Search(context.Background(), mustRequest(t, "  python programming ", mode.Vector))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.TotalResults != 2 || len(resp.Results) != 2 {
		t.Fatalf("total=%d len=%d", resp.TotalResults, len(resp.Results))
	}
	if resp.SearchTimeMs != 12.34 {
		t.Errorf("SearchTimeMs = %f", resp.SearchTimeMs)
	}
	if resp.Mode != mode.Vector || resp.Query != "python programming" {
		t.Errorf("echo = %q/%q", resp.Query, resp.Mode)
	}

	first := resp.Results[0]
	if first.ID() != "3" || first.Title() != "Python" || first.Score() != 0.8234 {
		t.Errorf("first = %s/%s/%f", first.ID(), first.Title(), first.Score())
	}
	if first.DisplayContent() != "<mark>python</mark> is..." {
		t.Errorf("DisplayContent() = %q", first.DisplayContent())
	}

	second := resp.Results[1]
	if second.ID() != "doc-9" {
		t.Errorf("second ID = %q", second.ID())
	}
	if second.Tags() == nil || len(second.Tags()) != 0 {
		t.Errorf("null tags should decode to empty slice, got %v", second.Tags())
	}
	if second.Highlighted() != "" {
		t.Errorf("Highlighted() = %q", second.Highlighted())
	}
}

func TestClient_Search_StatusError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"index not loaded"}`))
	})

	c := newTestClient(t, r, "")
	_, err := c.Search(context.Background(), mustRequest(t, "q", mode.Keyword))
	if !errors.Is(err, domain.ErrBackendStatus) {
		t.Fatalf("expected ErrBackendStatus, got %v", err)
	}

	var se *domain.StatusError
	if !errors.As(err, &se) {
		t.Fatal("expected *domain.StatusError")
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d", se.Code)
	}
	if se.Body != "index not loaded" {
		t.Errorf("Body = %q", se.Body)
	}
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	c := newTestClient(t, r, "")
	_, err := c.Search(context.Background(), mustRequest(t, "q", mode.Keyword))
	if !errors.Is(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestClient_Search_EmptyBody(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r, "")
	_, err := c.Search(context.Background(), mustRequest(t, "q", mode.Keyword))
	if !errors.Is(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestClient_Search_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(&Config{BaseURL: url})
	_, err := c.Search(context.Background(), mustRequest(t, "q", mode.Keyword))
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestClient_Search_Timeout(t *testing.T) {
	release := make(chan struct{})
	r := chi.NewRouter()
	r.Post("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	srv := httptest.NewServer(r)
	defer srv.Close()
	defer close(release)

	c := NewClient(&Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Search(context.Background(), mustRequest(t, "q", mode.Keyword))
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable on timeout, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("health endpoint must not carry credentials")
		}
		_, _ = w.Write([]byte(`{"status":"healthy","document_count":42,"keyword_search_ready":true,"vector_search_ready":false}`))
	})

	c := newTestClient(t, r, "secret")
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !h.Healthy() {
		t.Errorf("Status = %q", h.Status)
	}
	if h.DocumentCount == nil || *h.DocumentCount != 42 {
		t.Errorf("DocumentCount = %v", h.DocumentCount)
	}
	if h.KeywordReady == nil || !*h.KeywordReady {
		t.Error("KeywordReady should be true")
	}
	if h.VectorReady == nil || *h.VectorReady {
		t.Error("VectorReady should be false")
	}
}

func TestClient_Health_MinimalBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"starting"}`))
	})

	c := newTestClient(t, r, "")
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Healthy() {
		t.Error("starting backend should not be healthy")
	}
	if h.DocumentCount != nil || h.KeywordReady != nil || h.VectorReady != nil {
		t.Error("absent fields should stay nil")
	}
}

func TestClient_BearerToken(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Post("/api/search", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"results":[],"total_results":0,"search_time_ms":0}`))
	})

	c := newTestClient(t, r, "secret")
	if _, err := c.Search(context.Background(), mustRequest(t, "q", mode.Keyword)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got != "Bearer secret" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail":"bad mode"}`, "bad mode"},
		{`{"detail":[{"loc":["body","mode"]}]}`, `[{"loc":["body","mode"]}]`},
		{"Internal Server Error\n", "Internal Server Error"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := errorDetail([]byte(tc.body)); got != tc.want {
			t.Errorf("errorDetail(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
