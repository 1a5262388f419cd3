package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		name string
		err  *StatusError
		want string
	}{
		{"with body", &StatusError{Code: 500, Status: "Internal Server Error", Body: "server error"},
			"500 Internal Server Error: server error"},
		{"status text fallback", &StatusError{Code: 503}, "503 Service Unavailable"},
		{"custom status", &StatusError{Code: 418, Status: "Teapot", Body: "short"}, "418 Teapot: short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusError_Matching(t *testing.T) {
	err := fmt.Errorf("search: %w", NewStatusError(404, "Not Found", ""))
	if !errors.Is(err, ErrUpstreamStatus) {
		t.Error("404 should match ErrUpstreamStatus")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}

	err = NewStatusError(500, "", "boom")
	if errors.Is(err, ErrNotFound) {
		t.Error("500 should not match ErrNotFound")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Body != "boom" {
		t.Errorf("errors.As = %+v", se)
	}
}

func TestRejectedError(t *testing.T) {
	err := &RejectedError{Message: "Query too short"}
	if !errors.Is(err, ErrSearchRejected) {
		t.Error("should match ErrSearchRejected")
	}
	if err.Error() != "search rejected: Query too short" {
		t.Errorf("Error() = %q", err.Error())
	}
	if (&RejectedError{}).Error() != "search rejected" {
		t.Errorf("empty message Error() = %q", (&RejectedError{}).Error())
	}
}
