package mode

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchdemo/internal/domain"
)

// Mode is the search strategy the backend applies.
type Mode string

// Search mode constants.
const (
	// Keyword is BM25 ranking; the default.
	Keyword Mode = "keyword"
	// Vector is embedding similarity ranking.
	Vector Mode = "vector"
)

// Default is the mode a fresh client starts in.
const Default = Keyword

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Keyword || m == Vector
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Vector {
		return Keyword
	}
	return Vector
}

// Label is the human-readable mode name.
func (m Mode) Label() string {
	if m == Vector {
		return "AI Vector Search"
	}
	return "Keyword Search"
}

// Icon is the icon identifier shown next to the label.
func (m Mode) Icon() string {
	if m == Vector {
		return "bi-brain"
	}
	return "bi-keyboard"
}

// Parse converts user input into a Mode. Empty input yields Default.
func Parse(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidMode, s)
	}
	return m, nil
}
