package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport signals a network-level failure reaching the search API.
	ErrTransport = errors.New("search transport failure")
	// ErrUpstreamStatus signals a non-2xx response from the search API.
	ErrUpstreamStatus = errors.New("search api returned error status")
	// ErrInvalidResponse signals a 2xx response whose body is not valid JSON.
	ErrInvalidResponse = errors.New("invalid search response")
	// ErrSearchRejected signals a 2xx envelope with success=false.
	ErrSearchRejected = errors.New("search rejected")
	// ErrNotFound signals a missing resource on the search API.
	ErrNotFound = errors.New("not found")
)

// StatusError carries a non-2xx upstream response. Body is captured verbatim.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = http.StatusText(e.Code)
	}
	if e.Body == "" {
		return fmt.Sprintf("%d %s", e.Code, status)
	}
	return fmt.Sprintf("%d %s: %s", e.Code, status, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// Is lets callers match a 404 against ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// NewStatusError creates a StatusError.
func NewStatusError(code int, status, body string) error {
	return &StatusError{Code: code, Status: status, Body: body}
}

// RejectedError wraps ErrSearchRejected with the server-provided message.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrSearchRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSearchRejected.Error(), e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrSearchRejected }
