package ui

import (
	"sync"

	"github.com/kailas-cloud/searchdemo/internal/ui/notify"
	"github.com/kailas-cloud/searchdemo/internal/ui/view"
	"github.com/kailas-cloud/searchdemo/internal/usecase/health"
)

// Surface is an output device the client draws on.
// Implementations must be safe for concurrent use.
type Surface interface {
	notify.Listener

	ShowMode(ind view.ModeIndicator)
	ShowStatus(r health.Report)
	// ShowPanel makes exactly one result-area panel visible.
	ShowPanel(p view.Panel)
	// Apply sets the summary texts and, for a non-empty tree, replaces the
	// result container and scrolls it into view.
	Apply(t view.Tree)
}

// Snapshot is the visible state of a Page.
type Snapshot struct {
	Mode        view.ModeIndicator
	Status      health.Status
	StatusClass string
	Documents   *int
	Panel       view.Panel
	ResultCount string
	SearchTime  string
	Blocks      []view.Block
	Notices     []notify.Notice
	Scrolls     int
}

// Page is an in-memory Surface. It backs tests and headless runs.
type Page struct {
	mu sync.Mutex
	s  Snapshot
}

// NewPage creates a Page with no panel visible and a pending status.
func NewPage() *Page {
	return &Page{s: Snapshot{
		Panel:       view.PanelNone,
		Status:      health.Checking,
		StatusClass: health.Checking.Class(),
	}}
}

// ShowMode records the mode indicator.
func (p *Page) ShowMode(ind view.ModeIndicator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Mode = ind
}

// ShowStatus records the status indicator and document count.
func (p *Page) ShowStatus(r health.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Status = r.Status
	p.s.StatusClass = r.Status.Class()
	p.s.Documents = r.Documents
}

// ShowPanel records the visible panel.
func (p *Page) ShowPanel(panel view.Panel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Panel = panel
}

// Apply updates the summary and, for a non-empty tree, replaces the blocks
// and counts a scroll.
func (p *Page) Apply(t view.Tree) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.s.ResultCount = t.ResultCount
	p.s.SearchTime = t.SearchTime
	if t.Empty() {
		return
	}
	p.s.Blocks = make([]view.Block, len(t.Blocks))
	copy(p.s.Blocks, t.Blocks)
	p.s.Scrolls++
}

// NoticeShown adds n to the visible notices.
func (p *Page) NoticeShown(n notify.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Notices = append(p.s.Notices, n)
}

// NoticeHidden removes n from the visible notices.
func (p *Page) NoticeHidden(n notify.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.s.Notices {
		if p.s.Notices[i].ID == n.ID {
			p.s.Notices = append(p.s.Notices[:i], p.s.Notices[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the visible state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.s
	s.Blocks = append([]view.Block(nil), p.s.Blocks...)
	s.Notices = append([]notify.Notice(nil), p.s.Notices...)
	return s
}
