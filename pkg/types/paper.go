// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citation-lens: the paper
// and citation-edge shapes returned by the scholarly graph API, the
// ResultBundle assembled by the overlay pipeline, and configuration structs.
package types

// Author is a paper author as returned by the graph API. Name may be empty.
type Author struct {
	AuthorID string `json:"authorId" yaml:"author_id"`
	Name     string `json:"name" yaml:"name"`
}

// ExternalIDs maps a graph-API paper to identifiers in other namespaces.
// Only the keys the overlay cares about are decoded.
type ExternalIDs struct {
	ArXiv string `json:"ArXiv,omitempty" yaml:"arxiv,omitempty"`
	DOI   string `json:"DOI,omitempty" yaml:"doi,omitempty"`
}

// Paper is a subject or related paper. CitationCount and Year are pointers
// because the API omits them for records it has not counted; a paper with a
// nil CitationCount is excluded from all ranked output.
type Paper struct {
	// PaperID is the graph API's internal identifier, distinct from the
	// arXiv identifier used to look the subject paper up.
	PaperID string `json:"paperId" yaml:"paper_id"`

	Title         string      `json:"title" yaml:"title"`
	Authors       []Author    `json:"authors,omitempty" yaml:"authors,omitempty"`
	CitationCount *int        `json:"citationCount" yaml:"citation_count"`
	Year          *int        `json:"year,omitempty" yaml:"year,omitempty"`
	ExternalIDs   ExternalIDs `json:"externalIds,omitempty" yaml:"external_ids,omitempty"`
}

// Citations returns the citation count, or 0 when unknown. Callers that
// must distinguish unknown from zero check CitationCount directly.
func (p Paper) Citations() int {
	if p.CitationCount == nil {
		return 0
	}
	return *p.CitationCount
}

// DisplayTitle returns the title, or "Untitled" when the API has none.
func (p Paper) DisplayTitle() string {
	if p.Title == "" {
		return "Untitled"
	}
	return p.Title
}

// CitationEdge wraps a single cited-by relationship. Only the embedded
// citing paper survives into ranked output.
type CitationEdge struct {
	CitingPaper Paper `json:"citingPaper" yaml:"citing_paper"`
}

// ResultBundle is the unit the overlay caches and renders: the subject paper
// plus its ranked citing papers and ranked author works. TopCiting and
// AuthorWorks are sorted by citation count descending and never exceed the
// configured top-list limit. A bundle is immutable once cached.
type ResultBundle struct {
	// ArxivID is the page identifier the bundle was built for; it is the
	// cache key for the bundle.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	Subject     Paper   `json:"subject" yaml:"subject"`
	TopCiting   []Paper `json:"top_citing" yaml:"top_citing"`
	AuthorWorks []Paper `json:"author_works" yaml:"author_works"`
}
