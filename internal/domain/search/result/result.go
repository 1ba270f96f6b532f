package result

import "github.com/kailas-cloud/searchdemo/internal/domain/search/mode"

// Result is a single search hit as produced by the backend.
// Rank is the 1-based position in Response.Results, never a field.
type Result struct {
	id          string
	title       string
	content     string
	highlighted string
	category    string
	tags        []string
	score       float64
}

// New creates a search result. highlighted may be empty.
func New(
	id, title, content, highlighted, category string,
	tags []string, score float64,
) Result {
	return Result{
		id: id, title: title, content: content, highlighted: highlighted,
		category: category, tags: tags, score: score,
	}
}

// ID returns the backend document identifier (may be empty).
func (r *Result) ID() string { return r.id }

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Content returns the raw document content.
func (r *Result) Content() string { return r.content }

// Highlighted returns the content with matched terms marked up, or "".
func (r *Result) Highlighted() string { return r.highlighted }

// DisplayContent prefers highlighted content over raw content.
func (r *Result) DisplayContent() string {
	if r.highlighted != "" {
		return r.highlighted
	}
	return r.content
}

// Category returns the document category.
func (r *Result) Category() string { return r.category }

// Tags returns the document tags in backend order.
func (r *Result) Tags() []string { return r.tags }

// Score returns the BM25 score (keyword) or cosine similarity (vector).
func (r *Result) Score() float64 { return r.score }

// Response is the backend answer to one search request.
type Response struct {
	Results      []Result
	TotalResults int
	SearchTimeMs float64
	// Query and Mode echo the request when the backend reports them.
	Query string
	Mode  mode.Mode
}

// Empty reports whether the response carries no hits.
func (r *Response) Empty() bool { return len(r.Results) == 0 }
