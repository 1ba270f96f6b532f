// Package terminal draws the search client on a text terminal and reads
// commands from a line-oriented input.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kailas-cloud/searchdemo/internal/ui/notify"
	"github.com/kailas-cloud/searchdemo/internal/ui/view"
	"github.com/kailas-cloud/searchdemo/internal/usecase/health"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiDim     = "\x1b[2m"
	ansiReverse = "\x1b[7m"
	ansiNoRev   = "\x1b[27m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiCyan    = "\x1b[36m"
)

// Text shown for the non-result panels.
const (
	LoadingText   = "Searching..."
	NoResultsText = "No results found. Try a different query or switch search modes."
)

var icons = map[string]string{
	"bi-keyboard": "[kw]",
	"bi-brain":    "[ai]",
}

var (
	markReverse = strings.NewReplacer(view.MarkOpen, ansiReverse, view.MarkClose, ansiNoRev)
	markStrip   = strings.NewReplacer(view.MarkOpen, "", view.MarkClose, "")
)

// Surface writes the client state to a terminal.
type Surface struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewSurface creates a Surface on out. color enables ANSI styling.
func NewSurface(out io.Writer, color bool) *Surface {
	return &Surface{out: out, color: color}
}

// ShowMode prints the active mode with its icon.
func (s *Surface) ShowMode(ind view.ModeIndicator) {
	s.printf("Mode: %s %s\n", icons[ind.Icon], s.style(ansiBold, ind.Text))
}

// ShowStatus prints the backend status and document count.
func (s *Surface) ShowStatus(r health.Report) {
	c := ansiYellow
	switch r.Status {
	case health.Ready:
		c = ansiGreen
	case health.Error:
		c = ansiRed
	}
	line := "Status: " + s.style(c, string(r.Status))
	if r.Documents != nil {
		line += fmt.Sprintf(" (%d documents)", *r.Documents)
	}
	s.printf("%s\n", line)
}

// ShowPanel prints the loading and no-results panels. The results panel is
// printed by Apply.
func (s *Surface) ShowPanel(p view.Panel) {
	switch p {
	case view.PanelLoading:
		s.printf("%s\n", s.style(ansiDim, LoadingText))
	case view.PanelEmpty:
		s.printf("%s\n", s.style(ansiYellow, NoResultsText))
	}
}

// Apply prints the summary line followed by every result block.
func (s *Surface) Apply(t view.Tree) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.style(ansiBold, t.ResultCount), s.style(ansiDim, "("+t.SearchTime+")"))
	for i := range t.Blocks {
		s.writeBlock(&b, &t.Blocks[i])
	}
	s.printf("%s", b.String())
}

func (s *Surface) writeBlock(b *strings.Builder, blk *view.Block) {
	fmt.Fprintf(b, "\n%s %s  %s  %s\n",
		s.style(ansiDim, blk.RankBadge),
		s.style(ansiBold, blk.Title),
		s.style(ansiCyan, "["+blk.Category+"]"),
		s.style(ansiGreen, blk.Score.Text()),
	)
	fmt.Fprintf(b, "    %s\n", s.highlight(blk.Content))
	if len(blk.Tags) > 0 {
		tags := make([]string, len(blk.Tags))
		for i, tag := range blk.Tags {
			tags[i] = "#" + tag
		}
		fmt.Fprintf(b, "    %s\n", s.style(ansiDim, strings.Join(tags, " ")))
	}
}

// NoticeShown prints the notice with the id the user dismisses it by.
func (s *Surface) NoticeShown(n notify.Notice) {
	c := ansiCyan
	switch n.Severity {
	case notify.Warning:
		c = ansiYellow
	case notify.Error:
		c = ansiRed
	}
	s.printf("%s %s %s\n", s.style(c, "["+string(n.Severity)+"]"), n.Message, s.style(ansiDim, fmt.Sprintf("(#%d)", n.ID)))
}

// NoticeHidden is a no-op: printed lines cannot be taken back.
func (s *Surface) NoticeHidden(notify.Notice) {}

// Printf writes free-form output, serialised with everything else.
func (s *Surface) Printf(format string, args ...any) {
	s.printf(format, args...)
}

func (s *Surface) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Surface) style(code, text string) string {
	if !s.color {
		return text
	}
	return code + text + ansiReset
}

// highlight renders <mark> spans. Reverse video is always switched off
// before the line ends.
func (s *Surface) highlight(text string) string {
	if !s.color {
		return markStrip.Replace(text)
	}
	out := markReverse.Replace(text)
	if strings.Count(text, view.MarkOpen) > strings.Count(text, view.MarkClose) {
		out += ansiNoRev
	}
	return out
}
