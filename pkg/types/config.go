// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citation-lens/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OverlayConfig parameterizes the overlay pipeline. The limits are
// configuration, not hardcoded literals, so callers can widen or narrow the
// overlay without touching the pipeline.
type OverlayConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxAuthors is how many of the subject paper's authors get a works
	// lookup (default 5).
	MaxAuthors int `json:"max_authors" yaml:"max_authors"`

	// WorksPerAuthorLimit bounds each author-works request (default 50).
	WorksPerAuthorLimit int `json:"works_per_author_limit" yaml:"works_per_author_limit"`

	// CitationsPageLimit bounds the citations request (default 100).
	CitationsPageLimit int `json:"citations_page_limit" yaml:"citations_page_limit"`

	// TopListLimit bounds both ranked output lists (default 5).
	TopListLimit int `json:"top_list_limit" yaml:"top_list_limit"`

	// RequestsPerSecond throttles calls to the graph API (default 1, the
	// unauthenticated Semantic Scholar allowance).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// Default overlay limits.
const (
	DefaultMaxAuthors          = 5
	DefaultWorksPerAuthorLimit = 50
	DefaultCitationsPageLimit  = 100
	DefaultTopListLimit        = 5
	DefaultRequestsPerSecond   = 1.0
)

// ApplyDefaults fills zero-valued limits with the documented defaults.
func (c *OverlayConfig) ApplyDefaults() {
	if c.MaxAuthors <= 0 {
		c.MaxAuthors = DefaultMaxAuthors
	}
	if c.WorksPerAuthorLimit <= 0 {
		c.WorksPerAuthorLimit = DefaultWorksPerAuthorLimit
	}
	if c.CitationsPageLimit <= 0 {
		c.CitationsPageLimit = DefaultCitationsPageLimit
	}
	if c.TopListLimit <= 0 {
		c.TopListLimit = DefaultTopListLimit
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
}

// CacheConfig holds settings for the session result cache.
type CacheConfig struct {
	// Dir is the directory holding the session database. Empty means the
	// in-memory store only.
	Dir string `json:"dir" yaml:"dir"`

	// SessionTTL is how long a cached bundle stays valid (default 12h).
	// Expired entries are treated as absent and purged on read.
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl"`
}

// DefaultSessionTTL approximates a browsing session for the on-disk store.
const DefaultSessionTTL = 12 * time.Hour

// ServeConfig holds settings for the local overlay endpoint.
type ServeConfig struct {
	// Addr is the listen address (default "127.0.0.1:7151").
	Addr string `json:"addr" yaml:"addr"`
}

// AppConfig groups all configuration for citation-lens.
type AppConfig struct {
	Overlay OverlayConfig `json:"overlay" yaml:"overlay"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
}
