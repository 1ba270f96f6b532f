// Package view turns a search response into a display tree without touching
// any output device. Surfaces apply the tree.
package view

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/result"
)

// Content truncation settings.
const (
	MaxContentChars = 300
	Ellipsis        = "..."
)

// Panel names the mutually exclusive result-area panels.
type Panel string

// Panel constants.
const (
	PanelNone    Panel = "none"
	PanelLoading Panel = "loading"
	PanelResults Panel = "results"
	PanelEmpty   Panel = "no-results"
)

// ModeIndicator is the text and icon that show the active mode.
type ModeIndicator struct {
	Mode mode.Mode
	Text string
	Icon string
}

// Indicator builds the indicator for m.
func Indicator(m mode.Mode) ModeIndicator {
	return ModeIndicator{Mode: m, Text: m.Label(), Icon: m.Icon()}
}

// ScoreBadge is a labelled score, e.g. "BM-25: 0.823".
type ScoreBadge struct {
	Label string
	Value string
}

// Text joins label and value.
func (b ScoreBadge) Text() string { return b.Label + ": " + b.Value }

// FormatScore formats a score for the mode the backend ranked with:
// keyword scores are BM25 values with 3 decimals, vector scores are
// similarities shown as a percentage with 1 decimal.
func FormatScore(m mode.Mode, score float64) ScoreBadge {
	if m == mode.Vector {
		return ScoreBadge{Label: "Similarity", Value: strconv.FormatFloat(score*100, 'f', 1, 64) + "%"}
	}
	return ScoreBadge{Label: "BM-25", Value: strconv.FormatFloat(score, 'f', 3, 64)}
}

// Block is one rendered result.
type Block struct {
	Rank      int
	RankBadge string
	Title     string
	Category  string
	Score     ScoreBadge
	// Content may contain <mark> highlight markup from the backend.
	Content   string
	Truncated bool
	Tags      []string
}

// Tree is the full result-area display for one response.
type Tree struct {
	Mode        mode.Mode
	ResultCount string
	SearchTime  string
	Blocks      []Block
}

// Empty reports whether the tree has no result blocks.
func (t *Tree) Empty() bool { return len(t.Blocks) == 0 }

// Panel is the panel that should be visible once the tree is applied.
func (t *Tree) Panel() Panel {
	if t.Empty() {
		return PanelEmpty
	}
	return PanelResults
}

// Render builds the display tree for resp as ranked with mode m.
func Render(resp *result.Response, m mode.Mode) Tree {
	tree := Tree{
		Mode:        m,
		ResultCount: ResultCount(resp.TotalResults),
		SearchTime:  SearchTime(resp.SearchTimeMs),
		Blocks:      make([]Block, 0, len(resp.Results)),
	}
	for i := range resp.Results {
		tree.Blocks = append(tree.Blocks, renderBlock(&resp.Results[i], i+1, m))
	}
	return tree
}

func renderBlock(r *result.Result, rank int, m mode.Mode) Block {
	content, truncated := Truncate(r.DisplayContent(), MaxContentChars)
	tags := make([]string, len(r.Tags()))
	copy(tags, r.Tags())
	return Block{
		Rank:      rank,
		RankBadge: "#" + strconv.Itoa(rank),
		Title:     r.Title(),
		Category:  r.Category(),
		Score:     FormatScore(m, r.Score()),
		Content:   content,
		Truncated: truncated,
		Tags:      tags,
	}
}

// Highlight markup produced by the keyword backend.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Truncate keeps the first limit characters of s and appends Ellipsis when
// anything was cut. A cut never leaves half a highlight tag or an open
// highlight behind.
func Truncate(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return balanceMarks(s[:i]) + Ellipsis, true
		}
		n++
	}
	return s, false
}

// balanceMarks drops a highlight tag cut at the end of s and closes a
// highlight that is still open.
func balanceMarks(s string) string {
	if i := strings.LastIndexByte(s, '<'); i >= 0 {
		tail := s[i:]
		if strings.HasPrefix(MarkOpen, tail) || strings.HasPrefix(MarkClose, tail) {
			if tail != MarkOpen && tail != MarkClose {
				s = s[:i]
			}
		}
	}
	s = strings.TrimSuffix(s, MarkOpen)
	if strings.Count(s, MarkOpen) > strings.Count(s, MarkClose) {
		s += MarkClose
	}
	return s
}

// ResultCount formats the total result count.
func ResultCount(total int) string {
	return strconv.Itoa(total) + " results"
}

// SearchTime formats the backend latency.
func SearchTime(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 1, 64) + "ms"
}
