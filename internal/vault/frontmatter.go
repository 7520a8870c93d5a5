// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package vault

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

const fence = "---"

// SplitFrontmatter separates a leading YAML header from the document body.
// ok is false when the text has no complete header.
func SplitFrontmatter(text string) (header, body string, ok bool) {
	text = strings.TrimPrefix(text, "\ufeff")
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimRight(first, "\r") != fence {
		return "", text, false
	}

	offset := 0
	for {
		line, next, more := strings.Cut(rest[offset:], "\n")
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == fence || trimmed == "..." {
			return rest[:offset], next, true
		}
		if !more {
			return "", text, false
		}
		offset += len(line) + 1
	}
}

// ParseFrontmatter decodes the header of text. Text without a header
// decodes to an empty Frontmatter.
func ParseFrontmatter(text string) (*types.Frontmatter, error) {
	fm := &types.Frontmatter{}
	header, _, ok := SplitFrontmatter(text)
	if !ok || strings.TrimSpace(header) == "" {
		return fm, nil
	}
	if err := yaml.Unmarshal([]byte(header), fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm, nil
}
