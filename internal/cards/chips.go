// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cards

import (
	"html"
	"strconv"
	"strings"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// Link renders an internal link to the entity's document.
func Link(e *types.Entity) string {
	target := e.FilePath
	if target == "" {
		target = e.ID
	}
	return `<a class="internal-link" href="` + html.EscapeString(target) + `">` + html.EscapeString(e.DisplayName()) + `</a>`
}

// Chips renders the entity's related entities grouped by type, one chip per
// type in canonical order, each prefixed with the type icon. Sessions are
// reported through LastSeen instead.
func (f *Formatter) Chips(e *types.Entity, ds types.DataScope) string {
	related := f.Cache.RelatedByType(ds.Pattern, e.ID)
	if len(related) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range types.EntityTypes {
		if t == types.TypeSession {
			continue
		}
		list := related[t]
		if len(list) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(`<span class="chip ` + string(t) + `">` + html.EscapeString(f.Icons.Type(t)) + " ")
		for i, r := range list {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Link(r))
		}
		b.WriteString(`</span>`)
	}
	return b.String()
}

// LastSeen renders a link to the latest session that mentions the entity,
// or "" when it has not been seen.
func (f *Formatter) LastSeen(e *types.Entity, ds types.DataScope) string {
	s := f.Cache.LastSeen(ds.Pattern, e.ID)
	if s == nil {
		return ""
	}
	return Link(s)
}

// notesRow renders the nested notes sub-row of a table card. It shares the
// parent row's zebra class.
func notesRow(notes, zebra string, cols int) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return ""
	}
	return `<tr class="` + zebra + ` notes"><td colspan="` + strconv.Itoa(cols) + `">` + html.EscapeString(notes) + "</td></tr>\n"
}

func entityIcon(e *types.Entity) string {
	if e.Icon == "" {
		return ""
	}
	return html.EscapeString(e.Icon) + " "
}

func subtype(e *types.Entity) string {
	if e.Subtype == "" {
		return ""
	}
	return ` <span class="subtype">` + html.EscapeString(e.Subtype) + `</span>`
}
