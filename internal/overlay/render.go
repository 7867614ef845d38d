// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-lens/pkg/types"
)

// FormatTable writes a bundle as a human-readable overlay to w.
func FormatTable(b *types.ResultBundle, w io.Writer) {
	fmt.Fprintf(w, "%s  (arXiv:%s", b.Subject.DisplayTitle(), b.ArxivID)
	if b.Subject.Year != nil {
		fmt.Fprintf(w, ", %d", *b.Subject.Year)
	}
	fmt.Fprint(w, ")\n")
	if b.Subject.CitationCount != nil {
		fmt.Fprintf(w, "cited by %d\n", *b.Subject.CitationCount)
	}

	writeSection(w, "Top citing papers", b.TopCiting)
	writeSection(w, "Most cited works by these authors", b.AuthorWorks)
}

func writeSection(w io.Writer, heading string, papers []types.Paper) {
	fmt.Fprintf(w, "\n%s\n%s\n", heading, strings.Repeat("-", len(heading)))
	if len(papers) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for i, p := range papers {
		title := p.DisplayTitle()
		if len(title) > 70 {
			title = title[:67] + "..."
		}
		year := ""
		if p.Year != nil {
			year = fmt.Sprintf(" (%d)", *p.Year)
		}
		fmt.Fprintf(w, "%d. %-70s  %6d citations  %s%s\n",
			i+1, title, p.Citations(), formatAuthors(p.Authors), year)
	}
}

// FormatJSON writes the bundle as indented JSON to w.
func FormatJSON(b *types.ResultBundle, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// FormatYAML writes the bundle as YAML to w.
func FormatYAML(b *types.ResultBundle, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(b)
}

func formatAuthors(authors []types.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return truncate(names[0], 24)
	default:
		return truncate(names[0], 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
