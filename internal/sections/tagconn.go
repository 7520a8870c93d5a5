// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sections

import (
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// TagConnection renders the body of a tag-connection block listing the
// entities of typeToken tied to blockScope. The second result is false when
// the type token does not resolve; the block must then be left as written.
func (g *Generator) TagConnection(ds types.DataScope, blockScope, typeToken string) (string, bool) {
	t, ok := g.index.ResolveType(typeToken)
	if !ok {
		g.log.Warn("skipping tag connection with unknown type",
			zap.String("type", typeToken),
			zap.String("scope", blockScope))
		return "", false
	}

	var b strings.Builder
	b.WriteString("\n| " + string(t) + " for " + escapeCell(ds.Pattern) + " |\n")
	b.WriteString("| --- |\n")
	entities := g.cache.ActiveInScope(t, blockScope)
	if len(entities) == 0 {
		b.WriteString("| None |\n")
	}
	for _, e := range entities {
		b.WriteString("| [[" + e.ID + `\|` + escapeCell(e.DisplayName()) + "]] |\n")
	}
	b.WriteString("^" + string(t) + "-items-" + blockScope + "\n")
	return b.String(), true
}

// escapeCell keeps pipes from splitting a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
