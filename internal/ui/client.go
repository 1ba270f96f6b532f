// Package ui holds the search client core: state, event wiring, and the
// contract for the surfaces it draws on.
package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/domain"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/request"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/result"
	"github.com/kailas-cloud/searchdemo/internal/metrics"
	"github.com/kailas-cloud/searchdemo/internal/ui/event"
	"github.com/kailas-cloud/searchdemo/internal/ui/notify"
	"github.com/kailas-cloud/searchdemo/internal/ui/view"
	"github.com/kailas-cloud/searchdemo/internal/usecase/health"
)

// User-facing messages.
const (
	MsgEmptyQuery   = "Please enter a search query"
	MsgQueryTooLong = "Search query is too long"
	MsgSearchFailed = "Search failed. Please try again."
)

// Searcher runs one search request.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
}

// Prober checks backend health.
type Prober interface {
	Check(ctx context.Context) health.Report
}

// Option configures a SearchClient.
type Option func(*SearchClient)

// WithNotificationTTL sets how long notices stay visible.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(c *SearchClient) { c.ttl = ttl }
}

// WithMode sets the initial search mode.
func WithMode(m mode.Mode) Option {
	return func(c *SearchClient) {
		if m.IsValid() {
			c.mode = m
		}
	}
}

// SearchClient owns the UI state and drives a Surface.
type SearchClient struct {
	searcher Searcher
	prober   Prober
	surface  Surface
	logger   *zap.Logger
	ttl      time.Duration
	notices  *notify.Center

	mu    sync.Mutex
	mode  mode.Mode
	query string
	panel view.Panel

	searching atomic.Bool
	wg        sync.WaitGroup
}

// New creates a SearchClient. prober and logger can be nil.
func New(searcher Searcher, prober Prober, surface Surface, logger *zap.Logger, opts ...Option) *SearchClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &SearchClient{
		searcher: searcher,
		prober:   prober,
		surface:  surface,
		logger:   logger,
		mode:     mode.Default,
		panel:    view.PanelNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.notices = notify.New(c.ttl, surface)
	return c
}

// Init binds handlers on reg, draws the mode indicator and starts one
// asynchronous health probe.
func (c *SearchClient) Init(ctx context.Context, reg *event.Registry) {
	c.Bind(reg)
	c.surface.ShowMode(view.Indicator(c.Mode()))
	c.surface.ShowStatus(health.Report{Status: health.Checking})

	if c.prober == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.CheckHealth(ctx)
	}()
}

// Bind registers the client's handlers for every interaction event.
func (c *SearchClient) Bind(reg *event.Registry) {
	reg.On(event.SearchClicked, "search", func(ctx context.Context, _ event.Event) {
		c.Submit(ctx)
	})
	reg.On(event.KeyPressed, "search-on-enter", func(ctx context.Context, e event.Event) {
		if e.Key == event.KeyEnter {
			c.Submit(ctx)
		}
	})
	reg.On(event.InputChanged, "query", func(_ context.Context, e event.Event) {
		c.SetQuery(e.Value)
	})
	reg.On(event.ModeChanged, "mode", func(_ context.Context, e event.Event) {
		if e.Checked {
			c.SetMode(mode.Vector)
		} else {
			c.SetMode(mode.Keyword)
		}
	})
	reg.On(event.ExampleClicked, "example", func(ctx context.Context, e event.Event) {
		c.SetQuery(e.Value)
		c.Submit(ctx)
	})
	reg.On(event.NoticeDismissed, "dismiss", func(_ context.Context, e event.Event) {
		c.notices.Dismiss(e.ID)
	})
}

// Mode returns the current search mode.
func (c *SearchClient) Mode() mode.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the search mode and refreshes the indicator.
func (c *SearchClient) SetMode(m mode.Mode) {
	if !m.IsValid() {
		return
	}
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
	c.surface.ShowMode(view.Indicator(m))
}

// ToggleMode flips between keyword and vector mode.
func (c *SearchClient) ToggleMode() mode.Mode {
	c.mu.Lock()
	c.mode = c.mode.Toggle()
	m := c.mode
	c.mu.Unlock()
	c.surface.ShowMode(view.Indicator(m))
	return m
}

// SetQuery replaces the query text.
func (c *SearchClient) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

// Query returns the raw query text.
func (c *SearchClient) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// IsSearching reports whether a search is in flight.
func (c *SearchClient) IsSearching() bool {
	return c.searching.Load()
}

// Search runs one search with the current query and mode. An empty query
// posts a warning and sends nothing. A call made while another search is in
// flight is dropped and returns domain.ErrSearchInFlight.
func (c *SearchClient) Search(ctx context.Context) error {
	c.mu.Lock()
	query, m := strings.TrimSpace(c.query), c.mode
	c.mu.Unlock()

	req, err := request.New(query, m)
	if err != nil {
		c.rejectQuery(m, err)
		return err
	}

	if !c.searching.CompareAndSwap(false, true) {
		metrics.SearchesTotal.WithLabelValues(string(m), metrics.OutcomeDropped).Inc()
		c.logger.Debug("search dropped, another one is in flight")
		return domain.ErrSearchInFlight
	}
	defer c.searching.Store(false)

	prev := c.showPanel(view.PanelLoading)

	resp, err := c.searcher.Search(ctx, &req)
	if err != nil {
		c.showPanel(prev)
		c.notices.Post(notify.Error, MsgSearchFailed)
		c.logger.Error("search failed",
			zap.String("mode", string(req.Mode())),
			zap.Error(err),
		)
		return err
	}

	tree := view.Render(&resp, req.Mode())
	c.surface.Apply(tree)
	c.showPanel(tree.Panel())
	return nil
}

// Submit runs Search in the background. Wait joins it.
func (c *SearchClient) Submit(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Search(ctx); err != nil {
			c.logger.Debug("search not completed", zap.Error(err))
		}
	}()
}

// CheckHealth probes the backend and updates the status indicator.
func (c *SearchClient) CheckHealth(ctx context.Context) health.Report {
	if c.prober == nil {
		return health.Report{Status: health.Checking}
	}
	r := c.prober.Check(ctx)
	c.surface.ShowStatus(r)
	return r
}

// Notices returns the visible notifications, oldest first.
func (c *SearchClient) Notices() []notify.Notice {
	return c.notices.Active()
}

// Dismiss hides a notification.
func (c *SearchClient) Dismiss(id uint64) bool {
	return c.notices.Dismiss(id)
}

// Wait blocks until background searches and probes finish.
func (c *SearchClient) Wait() {
	c.wg.Wait()
}

// Close waits for background work and clears notifications.
func (c *SearchClient) Close() {
	c.wg.Wait()
	c.notices.Close()
}

func (c *SearchClient) rejectQuery(m mode.Mode, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		metrics.SearchesTotal.WithLabelValues(string(m), metrics.OutcomeEmptyQuery).Inc()
		c.notices.Post(notify.Warning, MsgEmptyQuery)
	case errors.Is(err, domain.ErrQueryTooLong):
		c.notices.Post(notify.Warning, MsgQueryTooLong)
	default:
		c.notices.Post(notify.Error, MsgSearchFailed)
	}
}

// showPanel switches the visible panel and returns the previous one.
func (c *SearchClient) showPanel(p view.Panel) view.Panel {
	c.mu.Lock()
	prev := c.panel
	c.panel = p
	c.mu.Unlock()
	c.surface.ShowPanel(p)
	return prev
}
