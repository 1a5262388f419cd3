package searchai

import "github.com/nitinanarwal/Search-AI/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTransport       = domain.ErrTransport
	ErrUpstreamStatus  = domain.ErrUpstreamStatus
	ErrInvalidResponse = domain.ErrInvalidResponse
	ErrSearchRejected  = domain.ErrSearchRejected
	ErrNotFound        = domain.ErrNotFound
)

// HTTPStatusError is returned for non-2xx API responses. Use errors.As() to inspect it.
type HTTPStatusError = domain.StatusError

// RejectedError is returned for {"success": false} API responses.
type RejectedError = domain.RejectedError
