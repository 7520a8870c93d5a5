// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sentinel locates machine-generated regions in markdown documents
// and splices regenerated bodies between their begin/end markers, leaving
// everything outside the markers untouched.
package sentinel

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind names a region type. Fixed kinds double as the marker name.
type Kind string

const (
	KindEncounters    Kind = "ENCOUNTERS"
	KindGroups        Kind = "GROUPS"
	KindNPCs          Kind = "NPCS"
	KindPlaces        Kind = "PLACES"
	KindRenown        Kind = "RENOWN"
	KindTagConnection Kind = "tagConnection"
)

// Region describes one fixed-name region kind and its anchored matcher.
type Region struct {
	Kind    Kind
	pattern *regexp.Regexp
}

// Match holds the split points of a matched region. Prefix ends with the
// begin marker; Suffix starts with the end marker.
type Match struct {
	Prefix string
	Body   string
	Suffix string
}

// NewRegion builds the matcher for <!-- NAME BEGIN --> ... <!-- NAME END -->.
// Matching is case-insensitive and spans lines.
func NewRegion(kind Kind) Region {
	name := regexp.QuoteMeta(string(kind))
	expr := fmt.Sprintf(`(?is)\A(.*?<!--\s*%s\s+BEGIN\s*-->)(.*?)(<!--\s*%s\s+END\s*-->.*)\z`, name, name)
	return Region{Kind: kind, pattern: regexp.MustCompile(expr)}
}

// Regions lists the fixed-name kinds in processing order.
var Regions = []Region{
	NewRegion(KindEncounters),
	NewRegion(KindGroups),
	NewRegion(KindNPCs),
	NewRegion(KindPlaces),
	NewRegion(KindRenown),
}

// Present reports whether text contains a complete begin/end pair.
func (r Region) Present(text string) bool {
	return r.pattern.MatchString(text)
}

// Find returns the split points of the first occurrence.
func (r Region) Find(text string) (*Match, bool) {
	m := r.pattern.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, false
	}
	return &Match{
		Prefix: text[m[2]:m[3]],
		Body:   text[m[4]:m[5]],
		Suffix: text[m[6]:m[7]],
	}, true
}

// Replace regenerates the first occurrence of the region. generate is only
// called when the region is present. The second result is false, and text
// is returned unchanged, when the region is absent.
func (r Region) Replace(text string, generate func() string) (string, bool) {
	if !r.Present(text) {
		return text, false
	}
	m, ok := r.Find(text)
	if !ok {
		return text, false
	}
	var b strings.Builder
	body := generate()
	b.Grow(len(m.Prefix) + len(body) + len(m.Suffix))
	b.WriteString(m.Prefix)
	b.WriteString(body)
	b.WriteString(m.Suffix)
	return b.String(), true
}
