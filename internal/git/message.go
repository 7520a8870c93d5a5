// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

const maxSubjectLength = 72

// GenerateMessage builds the commit message for a regeneration run: a
// conventional subject naming the regenerated scopes, the file list, and
// the go-reindex trailer.
func GenerateMessage(files []string) string {
	var b strings.Builder
	b.WriteString(buildSubject(files))
	if len(files) > 0 {
		b.WriteString("\n\nRegenerated files:\n")
		for _, f := range files {
			b.WriteString("- " + f + "\n")
		}
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n" + generatedTrailer)
	return b.String()
}

// buildSubject returns "docs(index): regenerate ..." truncated to the
// subject limit.
func buildSubject(files []string) string {
	var summary string
	switch scopes := scopesOf(files); {
	case len(files) == 1:
		summary = "regenerate " + files[0]
	case len(scopes) == 1:
		summary = fmt.Sprintf("regenerate %d index files in %s", len(files), scopes[0])
	default:
		summary = fmt.Sprintf("regenerate %d index files", len(files))
	}

	subject := "docs(index): " + summary
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

// scopesOf returns the distinct top-level directories of files, sorted.
func scopesOf(files []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range files {
		dir, _, found := strings.Cut(path.Clean(f), "/")
		if !found {
			dir = "*"
		}
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	sort.Strings(out)
	return out
}
