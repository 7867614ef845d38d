// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout is applied when the configuration leaves the HTTP
// timeout unset.
const DefaultTimeout = 30 * time.Second

// NewClient returns an *http.Client with the given timeout and a transport
// that stamps every request with userAgent unless the caller already set one.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			userAgent: userAgent,
			next:      http.DefaultTransport,
		},
	}
}

// userAgentTransport sets the User-Agent header on outgoing requests.
type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		// Clone before mutating: RoundTrippers must not modify the request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}
