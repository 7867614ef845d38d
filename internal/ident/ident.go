// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ident derives canonical arXiv identifiers from page URLs.
package ident

import (
	"net/url"
	"regexp"
	"strings"
)

// pagePattern matches the paper path shapes arxiv.org serves: /abs/<id>,
// /pdf/<id> and /html/<id>, with an optional version suffix and file
// extension after the numeric identifier. Only the NNNN.NNNN(N) group is
// captured; "vN" and ".pdf" never leak into the result.
var pagePattern = regexp.MustCompile(`^/(?:abs|pdf|html)/(\d{4}\.\d{4,5})(?:v\d+)?(?:\.[a-z]+)?$`)

// FromURL extracts the canonical arXiv identifier from a page URL.
// It returns ("", false) for anything that is not an arxiv.org paper page;
// unsupported input is a recognized outcome, never an error.
func FromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "arxiv.org" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	m := pagePattern.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
