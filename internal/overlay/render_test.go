// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-lens/pkg/types"
)

func renderBundle() *types.ResultBundle {
	return &types.ResultBundle{
		ArxivID: "2301.00001",
		Subject: types.Paper{PaperID: "P1", Title: "Subject", CitationCount: intPtr(42), Year: intPtr(2023)},
		TopCiting: []types.Paper{
			{PaperID: "c1", Title: "", CitationCount: intPtr(80), Authors: []types.Author{{Name: "Alice"}}},
		},
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(renderBundle(), &buf)
	out := buf.String()

	for _, want := range []string{
		"Subject",
		"arXiv:2301.00001",
		"cited by 42",
		"Top citing papers",
		"Untitled", // missing title falls back
		"Most cited works by these authors",
		"(none)", // empty author-works section
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(renderBundle(), &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded types.ResultBundle
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.ArxivID != "2301.00001" || len(decoded.TopCiting) != 1 {
		t.Errorf("decoded = %+v, want original bundle back", decoded)
	}
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatYAML(renderBundle(), &buf); err != nil {
		t.Fatalf("FormatYAML: %v", err)
	}

	// The identifier looks numeric, so the encoder quotes it; decode rather
	// than match the scalar's textual form.
	var decoded types.ResultBundle
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.ArxivID != "2301.00001" {
		t.Errorf("decoded arxiv_id = %q, want %q", decoded.ArxivID, "2301.00001")
	}
	if decoded.Subject.Citations() != 42 {
		t.Errorf("decoded subject citations = %d, want 42", decoded.Subject.Citations())
	}
}
