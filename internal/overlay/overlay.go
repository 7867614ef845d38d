// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlay sequences the citation-overlay pipeline: identifier
// extraction, the primary paper fetch, the concurrent secondary fetches,
// ranking, and the session cache. It emits discriminated events (loading,
// error, ready) to a sink callback and has no rendering dependency.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/citation-lens/internal/cache"
	"github.com/pdiddy/citation-lens/internal/ident"
	"github.com/pdiddy/citation-lens/internal/rank"
	"github.com/pdiddy/citation-lens/internal/scholar"
	"github.com/pdiddy/citation-lens/pkg/types"
)

// ErrNotApplicable marks a URL that is not an arXiv paper page. It is a
// recognized no-op outcome, not a pipeline fault.
var ErrNotApplicable = errors.New("not an arXiv paper page")

// Fetcher is the slice of the graph API client the pipeline uses.
type Fetcher interface {
	FetchPaper(ctx context.Context, arxivID string) (*types.Paper, error)
	FetchCitations(ctx context.Context, paperID string, limit int) ([]types.CitationEdge, error)
	FetchAuthorWorks(ctx context.Context, authorID string, limit int) ([]types.Paper, error)
}

// EventKind discriminates pipeline events.
type EventKind int

const (
	// EventLoading signals that network fetches are in flight.
	EventLoading EventKind = iota
	// EventError carries a terminal, human-readable failure message.
	EventError
	// EventReady carries the assembled ResultBundle.
	EventReady
)

// Event is the handoff shape between the pipeline and a rendering sink.
// Exactly one of Message (EventError) or Bundle (EventReady) is populated.
type Event struct {
	Kind      EventKind
	Message   string
	Bundle    *types.ResultBundle
	FromCache bool
}

// Sink consumes pipeline events. A nil sink discards them.
type Sink func(Event)

// Pipeline wires the graph API client, the ranking functions, and the
// session cache into one lookup flow.
type Pipeline struct {
	client Fetcher
	cache  *cache.Gateway
	cfg    types.OverlayConfig
	logger *slog.Logger
}

// New builds a Pipeline. Zero-valued limits in cfg are replaced with the
// documented defaults.
func New(client Fetcher, gw *cache.Gateway, cfg types.OverlayConfig, logger *slog.Logger) *Pipeline {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		client: client,
		cache:  gw,
		cfg:    cfg,
		logger: logger.With("component", "overlay"),
	}
}

// Run extracts the identifier from a page URL and runs the lookup.
// URLs that are not arXiv paper pages return ErrNotApplicable without
// emitting any event.
func (p *Pipeline) Run(ctx context.Context, pageURL string, emit Sink) error {
	id, ok := ident.FromURL(pageURL)
	if !ok {
		return ErrNotApplicable
	}
	p.Lookup(ctx, id, emit)
	return nil
}

// Lookup resolves one arXiv identifier into events. A cached bundle short-
// circuits to EventReady with zero network calls; otherwise the primary
// paper is fetched, the citations and author-works branches run
// concurrently, and the assembled bundle is cached before EventReady.
// Faults other than a single author's works fetch terminate the lookup
// with EventError; nothing is retried within one call.
func (p *Pipeline) Lookup(ctx context.Context, arxivID string, emit Sink) {
	if emit == nil {
		emit = func(Event) {}
	}

	if bundle, ok := p.cache.Get(ctx, arxivID); ok {
		emit(Event{Kind: EventReady, Bundle: bundle, FromCache: true})
		return
	}

	emit(Event{Kind: EventLoading})

	subject, err := p.client.FetchPaper(ctx, arxivID)
	if err != nil {
		emit(Event{Kind: EventError, Message: faultMessage(err)})
		return
	}

	bundle, err := p.assemble(ctx, arxivID, subject)
	if err != nil {
		emit(Event{Kind: EventError, Message: faultMessage(err)})
		return
	}

	// A torn-down context means the page that asked is gone; skip the
	// cache write rather than record state for a dead load.
	if ctx.Err() == nil {
		p.cache.Put(ctx, arxivID, bundle)
	}
	emit(Event{Kind: EventReady, Bundle: bundle})
}

// assemble fans out the citations fetch and one works fetch per author
// (bounded to MaxAuthors) and joins them into a ResultBundle. A failed
// author fetch degrades to an empty list for that author; a failed
// citations fetch fails the whole join.
func (p *Pipeline) assemble(ctx context.Context, arxivID string, subject *types.Paper) (*types.ResultBundle, error) {
	authors := subject.Authors
	if len(authors) > p.cfg.MaxAuthors {
		authors = authors[:p.cfg.MaxAuthors]
	}

	var topCiting []types.Paper
	workLists := make([][]types.Paper, len(authors))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		edges, err := p.client.FetchCitations(gctx, subject.PaperID, p.cfg.CitationsPageLimit)
		if err != nil {
			return fmt.Errorf("fetching citations: %w", err)
		}
		topCiting = rank.TopCiting(edges, p.cfg.TopListLimit)
		return nil
	})

	for i, author := range authors {
		if author.AuthorID == "" {
			continue
		}
		i, author := i, author
		g.Go(func() error {
			works, err := p.client.FetchAuthorWorks(gctx, author.AuthorID, p.cfg.WorksPerAuthorLimit)
			if err != nil {
				// Partial degradation: this author contributes no works.
				p.logger.Warn("author works fetch failed", "author_id", author.AuthorID, "error", err)
				return nil
			}
			workLists[i] = works
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.ResultBundle{
		ArxivID:     arxivID,
		Subject:     *subject,
		TopCiting:   topCiting,
		AuthorWorks: rank.MergeAuthorWorks(workLists, subject.PaperID, p.cfg.TopListLimit),
	}, nil
}

// faultMessage maps a pipeline fault onto the short message the rendering
// boundary shows.
func faultMessage(err error) string {
	switch {
	case scholar.IsNotFound(err):
		return "this paper is not indexed by the citation graph"
	case scholar.IsRateLimited(err):
		return "the citation graph is rate limiting requests, try again in a minute"
	default:
		return "citation lookup failed: " + err.Error()
	}
}
