// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"reflect"
	"testing"

	"github.com/pdiddy/citation-lens/pkg/types"
)

func intPtr(n int) *int { return &n }

func paper(id string, citations *int) types.Paper {
	return types.Paper{PaperID: id, Title: "Paper " + id, CitationCount: citations}
}

func edge(id string, citations *int) types.CitationEdge {
	return types.CitationEdge{CitingPaper: paper(id, citations)}
}

func counts(papers []types.Paper) []int {
	out := make([]int, len(papers))
	for i, p := range papers {
		out[i] = *p.CitationCount
	}
	return out
}

func ids(papers []types.Paper) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = p.PaperID
	}
	return out
}

// --- TopCiting ---

func TestTopCitingSortsAndTruncates(t *testing.T) {
	edges := []types.CitationEdge{
		edge("a", intPtr(10)),
		edge("b", intPtr(50)),
		edge("c", intPtr(30)),
		edge("d", intPtr(5)),
		edge("e", intPtr(80)),
		edge("f", intPtr(20)),
	}

	got := TopCiting(edges, 5)
	want := []int{80, 50, 30, 20, 10}
	if !reflect.DeepEqual(counts(got), want) {
		t.Errorf("counts = %v, want %v (5-count entry dropped by truncation)", counts(got), want)
	}
}

func TestTopCitingExcludesNullCounts(t *testing.T) {
	edges := []types.CitationEdge{
		edge("a", intPtr(10)),
		edge("b", nil),
		edge("c", intPtr(30)),
	}

	got := TopCiting(edges, 5)
	if !reflect.DeepEqual(ids(got), []string{"c", "a"}) {
		t.Errorf("ids = %v, want [c a]: null-count entry excluded, not sorted last", ids(got))
	}
}

func TestTopCitingEmptyInput(t *testing.T) {
	if got := TopCiting(nil, 5); len(got) != 0 {
		t.Errorf("TopCiting(nil) = %v, want empty", got)
	}
	if got := TopCiting([]types.CitationEdge{}, 5); len(got) != 0 {
		t.Errorf("TopCiting(empty) = %v, want empty", got)
	}
}

func TestTopCitingZeroCountIsEligible(t *testing.T) {
	edges := []types.CitationEdge{edge("a", intPtr(0))}
	got := TopCiting(edges, 5)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: a known zero count is still ranked", len(got))
	}
}

func TestTopCitingStableTieOrder(t *testing.T) {
	edges := []types.CitationEdge{
		edge("first", intPtr(10)),
		edge("second", intPtr(10)),
		edge("third", intPtr(10)),
	}
	got := TopCiting(edges, 5)
	if !reflect.DeepEqual(ids(got), []string{"first", "second", "third"}) {
		t.Errorf("ids = %v, want encounter order for equal counts", ids(got))
	}
}

func TestTopCitingDefaultLimit(t *testing.T) {
	var edges []types.CitationEdge
	for i := 0; i < 10; i++ {
		edges = append(edges, edge(string(rune('a'+i)), intPtr(i)))
	}
	got := TopCiting(edges, 0)
	if len(got) != types.DefaultTopListLimit {
		t.Errorf("len = %d, want default limit %d", len(got), types.DefaultTopListLimit)
	}
}

func TestTopCitingIdempotent(t *testing.T) {
	edges := []types.CitationEdge{
		edge("a", intPtr(3)),
		edge("b", intPtr(9)),
		edge("c", nil),
	}
	first := TopCiting(edges, 5)
	second := TopCiting(edges, 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

// --- MergeAuthorWorks ---

func TestMergeAuthorWorksDeduplicates(t *testing.T) {
	shared := paper("shared", intPtr(40))
	lists := [][]types.Paper{
		{paper("x", intPtr(10)), shared},
		{shared, paper("y", intPtr(60))},
	}

	got := MergeAuthorWorks(lists, "", 5)
	if !reflect.DeepEqual(ids(got), []string{"y", "shared", "x"}) {
		t.Errorf("ids = %v, want [y shared x] with shared appearing once", ids(got))
	}
}

func TestMergeAuthorWorksExcludesSubject(t *testing.T) {
	lists := [][]types.Paper{
		{paper("subject", intPtr(100)), paper("other", intPtr(10))},
	}

	got := MergeAuthorWorks(lists, "subject", 5)
	if !reflect.DeepEqual(ids(got), []string{"other"}) {
		t.Errorf("ids = %v, subject paper must never appear", ids(got))
	}
}

func TestMergeAuthorWorksSkipsInvalidEntries(t *testing.T) {
	lists := [][]types.Paper{
		{
			paper("", intPtr(99)),    // no identifier
			paper("a", nil),          // unknown citation count
			paper("b", intPtr(7)),
		},
	}

	got := MergeAuthorWorks(lists, "", 5)
	if !reflect.DeepEqual(ids(got), []string{"b"}) {
		t.Errorf("ids = %v, want [b]", ids(got))
	}
}

func TestMergeAuthorWorksSortsAndTruncates(t *testing.T) {
	lists := [][]types.Paper{
		{paper("a", intPtr(1)), paper("b", intPtr(9)), paper("c", intPtr(5))},
		{paper("d", intPtr(7)), paper("e", intPtr(3)), paper("f", intPtr(8))},
	}

	got := MergeAuthorWorks(lists, "", 5)
	want := []int{9, 8, 7, 5, 3}
	if !reflect.DeepEqual(counts(got), want) {
		t.Errorf("counts = %v, want %v", counts(got), want)
	}
}

func TestMergeAuthorWorksFirstOccurrenceWins(t *testing.T) {
	// Same identifier with different surrounding fields: the first
	// author-list occurrence is the one kept.
	first := types.Paper{PaperID: "dup", Title: "kept", CitationCount: intPtr(5)}
	second := types.Paper{PaperID: "dup", Title: "dropped", CitationCount: intPtr(5)}
	lists := [][]types.Paper{{first}, {second}}

	got := MergeAuthorWorks(lists, "", 5)
	if len(got) != 1 || got[0].Title != "kept" {
		t.Errorf("got = %+v, want single entry titled 'kept'", got)
	}
}

func TestMergeAuthorWorksEmptyLists(t *testing.T) {
	if got := MergeAuthorWorks(nil, "x", 5); len(got) != 0 {
		t.Errorf("MergeAuthorWorks(nil) = %v, want empty", got)
	}
	// A failed per-author fetch shows up as an empty inner list.
	lists := [][]types.Paper{{}, {paper("a", intPtr(2))}, {}}
	got := MergeAuthorWorks(lists, "", 5)
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Errorf("ids = %v, want [a]", ids(got))
	}
}

func TestMergeAuthorWorksNeverExceedsLimit(t *testing.T) {
	var list []types.Paper
	for i := 0; i < 20; i++ {
		list = append(list, paper(string(rune('a'+i)), intPtr(i)))
	}
	got := MergeAuthorWorks([][]types.Paper{list}, "", 3)
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestMergeAuthorWorksIdempotent(t *testing.T) {
	lists := [][]types.Paper{
		{paper("a", intPtr(4)), paper("b", nil)},
		{paper("a", intPtr(4)), paper("c", intPtr(1))},
	}
	first := MergeAuthorWorks(lists, "z", 5)
	second := MergeAuthorWorks(lists, "z", 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}
