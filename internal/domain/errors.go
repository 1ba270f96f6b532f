package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a query that is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")
	// ErrQueryTooLong signals a query above the accepted length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidMode signals an unknown search mode.
	ErrInvalidMode = errors.New("invalid search mode")
	// ErrSearchInFlight signals that a search attempt was dropped because another one is outstanding.
	ErrSearchInFlight = errors.New("search already in flight")

	// ErrBackendUnavailable signals a transport-level failure talking to the search backend.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrBackendStatus signals a non-2xx response from the search backend.
	ErrBackendStatus = errors.New("search backend returned error status")
	// ErrInvalidResponse signals a backend body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// StatusError wraps ErrBackendStatus with the HTTP status and a body excerpt.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrBackendStatus.Error(), e.Code)
	}
	return fmt.Sprintf("%s: %d: %s", ErrBackendStatus.Error(), e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrBackendStatus }

// NewStatusError creates a backend status error.
func NewStatusError(code int, body string) error {
	return &StatusError{Code: code, Body: body}
}
