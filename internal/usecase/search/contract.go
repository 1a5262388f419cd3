package search

import (
	"context"

	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
)

// Transport sends a payload to the search API and returns the raw result records.
// A nil slice means the response carried no results field.
type Transport interface {
	Search(ctx context.Context, payload request.Payload) ([]result.Raw, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, payload request.Payload) ([]result.Raw, error)

// Search implements Transport.
func (f TransportFunc) Search(ctx context.Context, payload request.Payload) ([]result.Raw, error) {
	return f(ctx, payload)
}
