// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package reindex

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

// Diff renders a line diff of before and after with a little context.
// Unchanged runs longer than the context are elided with a "@@" line.
func Diff(path, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- " + path + "\n")
	sb.WriteString("+++ " + path + "\n")

	last := len(diffs) - 1
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", ls)
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", ls)
		case diffmatchpatch.DiffEqual:
			hasPrev, hasNext := i > 0, i < last
			switch {
			case hasPrev && hasNext && len(ls) <= 2*diffContext:
				writeLines(&sb, " ", ls)
			case hasPrev && hasNext:
				writeLines(&sb, " ", ls[:diffContext])
				sb.WriteString("@@\n")
				writeLines(&sb, " ", ls[len(ls)-diffContext:])
			case hasPrev:
				writeLines(&sb, " ", ls[:min(diffContext, len(ls))])
			case hasNext:
				if len(ls) > diffContext {
					sb.WriteString("@@\n")
				}
				writeLines(&sb, " ", ls[max(0, len(ls)-diffContext):])
			}
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	ls := strings.SplitAfter(s, "\n")
	if len(ls) > 0 && ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}

func writeLines(sb *strings.Builder, prefix string, ls []string) {
	for _, l := range ls {
		sb.WriteString(prefix)
		sb.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			sb.WriteString("\n")
		}
	}
}
