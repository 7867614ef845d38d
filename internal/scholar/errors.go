// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"fmt"
)

// Common errors returned by the graph API client.
var (
	// ErrNotFound indicates the API has no record for the identifier.
	// Callers treat this as "not indexed", not a fault.
	ErrNotFound = errors.New("paper not indexed by the graph API")

	// ErrRateLimited indicates the API rejected the request with HTTP 429.
	ErrRateLimited = errors.New("graph API rate limit exceeded, try again in a minute")

	// ErrNetwork indicates a transport-level failure with no HTTP response.
	ErrNetwork = errors.New("network error reaching the graph API")
)

// APIError represents a non-success HTTP status other than 404 and 429.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph API returned HTTP %d", e.StatusCode)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited reports whether err means the API throttled the request.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
