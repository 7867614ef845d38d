// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar is a client for the Semantic Scholar academic graph API.
// It exposes the three lookups the overlay pipeline needs: the subject
// paper, the papers citing it, and the works of a single author. Transport
// failures are normalized into the sentinel errors in errors.go; the client
// never retries, that decision belongs to the caller.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citation-lens/internal/httputil"
	"github.com/pdiddy/citation-lens/pkg/types"
)

// apiBase is the Semantic Scholar graph API root. Declared as a var so
// tests can substitute an httptest server.
var apiBase = "https://api.semanticscholar.org/graph/v1"

const (
	// arxivNamespace prefixes arXiv identifiers in paper lookups.
	arxivNamespace = "arXiv"

	paperFields    = "paperId,title,authors,citationCount,year"
	citationFields = "paperId,title,authors,citationCount,year,externalIds"
	worksFields    = "paperId,title,authors,citationCount,year,externalIds"

	defaultUserAgent = "citation-lens/0.1"
)

// Client issues rate-limited GET requests against the graph API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit sets the client-side request rate in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a graph API client with the default timeout, user
// agent, and the unauthenticated rate allowance.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: httputil.NewClient(30*time.Second, defaultUserAgent),
		limiter:    rate.NewLimiter(rate.Limit(types.DefaultRequestsPerSecond), 1),
		baseURL:    apiBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPaper looks up the subject paper by its arXiv identifier. A missing
// record surfaces as ErrNotFound.
func (c *Client) FetchPaper(ctx context.Context, arxivID string) (*types.Paper, error) {
	params := url.Values{"fields": {paperFields}}
	path := "/paper/" + arxivNamespace + ":" + url.PathEscape(arxivID)

	var paper types.Paper
	if err := c.get(ctx, path, params, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// FetchCitations returns the cited-by edges for a paper. paperID is the
// graph API's internal identifier from a prior FetchPaper, not the arXiv
// identifier. limit bounds the page; values <= 0 fall back to the default.
func (c *Client) FetchCitations(ctx context.Context, paperID string, limit int) ([]types.CitationEdge, error) {
	if limit <= 0 {
		limit = types.DefaultCitationsPageLimit
	}
	params := url.Values{
		"fields": {citationFields},
		"limit":  {fmt.Sprintf("%d", limit)},
	}
	path := "/paper/" + url.PathEscape(paperID) + "/citations"

	var resp struct {
		Data []types.CitationEdge `json:"data"`
	}
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchAuthorWorks returns an author's papers, bounded to limit.
func (c *Client) FetchAuthorWorks(ctx context.Context, authorID string, limit int) ([]types.Paper, error) {
	if limit <= 0 {
		limit = types.DefaultWorksPerAuthorLimit
	}
	params := url.Values{
		"fields": {worksFields},
		"limit":  {fmt.Sprintf("%d", limit)},
	}
	path := "/author/" + url.PathEscape(authorID) + "/papers"

	var resp struct {
		Data []types.Paper `json:"data"`
	}
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// get performs one GET round trip and decodes the JSON body into out.
// Status codes map onto the error taxonomy: 404 is ErrNotFound, 429 is
// ErrRateLimited, any other non-2xx is an APIError, and a failure with no
// response at all is ErrNetwork.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing graph API response: %w", err)
	}
	return nil
}
