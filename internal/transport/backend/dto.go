package backend

import (
	"strconv"

	"github.com/kailas-cloud/searchdemo/internal/domain"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/request"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/result"
)

// searchRequestDTO is the POST /api/search body.
type searchRequestDTO struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
	Limit int    `json:"limit"`
}

// searchResultDTO is one hit in the search response.
type searchResultDTO struct {
	ID                 any      `json:"id,omitempty"`
	Title              string   `json:"title"`
	Content            string   `json:"content"`
	HighlightedContent *string  `json:"highlighted_content,omitempty"`
	Category           string   `json:"category"`
	Tags               []string `json:"tags"`
	Score              float64  `json:"score"`
}

// searchResponseDTO is the POST /api/search response body.
type searchResponseDTO struct {
	Results      []searchResultDTO `json:"results"`
	TotalResults int               `json:"total_results"`
	SearchTimeMs float64           `json:"search_time_ms"`
	Query        string            `json:"query,omitempty"`
	Mode         string            `json:"mode,omitempty"`
}

// healthResponseDTO is the GET /api/health response body.
type healthResponseDTO struct {
	Status             string `json:"status"`
	DocumentCount      *int   `json:"document_count,omitempty"`
	KeywordSearchReady *bool  `json:"keyword_search_ready,omitempty"`
	VectorSearchReady  *bool  `json:"vector_search_ready,omitempty"`
}

func searchRequestToDTO(req *request.Request) searchRequestDTO {
	return searchRequestDTO{
		Query: req.Query(),
		Mode:  string(req.Mode()),
		Limit: req.Limit(),
	}
}

func searchResponseFromDTO(dto *searchResponseDTO) result.Response {
	results := make([]result.Result, len(dto.Results))
	for i := range dto.Results {
		results[i] = searchResultFromDTO(&dto.Results[i])
	}
	return result.Response{
		Results:      results,
		TotalResults: dto.TotalResults,
		SearchTimeMs: dto.SearchTimeMs,
		Query:        dto.Query,
		Mode:         mode.Mode(dto.Mode),
	}
}

func searchResultFromDTO(dto *searchResultDTO) result.Result {
	highlighted := ""
	if dto.HighlightedContent != nil {
		highlighted = *dto.HighlightedContent
	}
	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	return result.New(idString(dto.ID), dto.Title, dto.Content, highlighted, dto.Category, tags, dto.Score)
}

// idString accepts numeric or string document ids.
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

func healthFromDTO(dto *healthResponseDTO) domain.BackendHealth {
	return domain.BackendHealth{
		Status:        dto.Status,
		DocumentCount: dto.DocumentCount,
		KeywordReady:  dto.KeywordSearchReady,
		VectorReady:   dto.VectorSearchReady,
	}
}
