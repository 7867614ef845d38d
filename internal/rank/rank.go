// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank turns raw graph API responses into the bounded, sorted lists
// the overlay shows. Both functions are pure: same input, same output, no I/O.
package rank

import (
	"sort"

	"github.com/pdiddy/citation-lens/pkg/types"
)

// TopCiting extracts the citing papers from a list of citation edges, drops
// papers with an unknown citation count, and returns the top limit papers
// sorted by citation count descending. Ties keep their encounter order.
// A nil or empty edge list yields an empty result, never an error.
func TopCiting(edges []types.CitationEdge, limit int) []types.Paper {
	if limit <= 0 {
		limit = types.DefaultTopListLimit
	}

	papers := make([]types.Paper, 0, len(edges))
	for _, e := range edges {
		if e.CitingPaper.CitationCount == nil {
			continue
		}
		papers = append(papers, e.CitingPaper)
	}

	sortByCitations(papers)
	if len(papers) > limit {
		papers = papers[:limit]
	}
	return papers
}

// MergeAuthorWorks merges per-author paper lists into one deduplicated,
// ranked list. lists is ordered by author query order; within it, the first
// occurrence of a paper identifier wins and later duplicates are dropped no
// matter which author supplied them. Papers without an identifier or
// without a citation count are skipped, and excludeID (the subject paper)
// never appears in the output. The merged set is sorted by citation count
// descending and truncated to limit.
func MergeAuthorWorks(lists [][]types.Paper, excludeID string, limit int) []types.Paper {
	if limit <= 0 {
		limit = types.DefaultTopListLimit
	}

	seen := make(map[string]bool)
	if excludeID != "" {
		seen[excludeID] = true
	}

	var merged []types.Paper
	for _, list := range lists {
		for _, p := range list {
			if p.PaperID == "" || seen[p.PaperID] || p.CitationCount == nil {
				continue
			}
			seen[p.PaperID] = true
			merged = append(merged, p)
		}
	}

	sortByCitations(merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// sortByCitations orders papers by citation count descending, keeping the
// original order for equal counts.
func sortByCitations(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return *papers[i].CitationCount > *papers[j].CitationCount
	})
}
