// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sentinel

import (
	"regexp"
	"strings"
)

// legacyPlaceToken is the old spelling of the place type in tag blocks.
const legacyPlaceToken = "location"

var (
	tagBlockRegex = regexp.MustCompile(`(?is)(<!--\s*tagConnection:begin((?:\s+[a-z][\w-]*\s*=\s*"[^"]*")*)\s*-->)(.*?)(<!--\s*tagConnection:end\s*-->)`)
	tagAttrRegex  = regexp.MustCompile(`(?i)([a-z][\w-]*)\s*=\s*"([^"]*)"`)
)

// TagBlock is one tag-connection occurrence. Type is already normalized.
type TagBlock struct {
	Scope   string
	Type    string
	RawType string // Type token as written in the document
	Match
}

// TagFunc produces the new body for a tag block. Returning false leaves the
// whole occurrence as written.
type TagFunc func(b TagBlock) (body string, ok bool)

// TagResult reports what happened to each tag block in a document.
type TagResult struct {
	Replaced []TagBlock
	Skipped  []TagBlock
}

// NormalizeType lower-cases a type token and maps the legacy "location"
// spelling to "place".
func NormalizeType(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == legacyPlaceToken {
		return "place"
	}
	return t
}

// ReplaceTagConnections regenerates every tag-connection block in text
// independently. Text between and around blocks is copied verbatim.
func ReplaceTagConnections(text string, fn TagFunc) (string, TagResult) {
	var res TagResult
	locs := tagBlockRegex.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, res
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		block := TagBlock{Match: Match{
			Prefix: text[loc[2]:loc[3]],
			Body:   text[loc[6]:loc[7]],
			Suffix: text[loc[8]:loc[9]],
		}}
		for _, a := range tagAttrRegex.FindAllStringSubmatch(text[loc[4]:loc[5]], -1) {
			switch strings.ToLower(a[1]) {
			case "scope":
				block.Scope = a[2]
			case "type":
				block.RawType = a[2]
				block.Type = NormalizeType(a[2])
			}
		}

		b.WriteString(text[last:start])
		body, ok := fn(block)
		if ok {
			b.WriteString(block.Prefix)
			b.WriteString(body)
			b.WriteString(block.Suffix)
			res.Replaced = append(res.Replaced, block)
		} else {
			b.WriteString(text[start:end])
			res.Skipped = append(res.Skipped, block)
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String(), res
}
