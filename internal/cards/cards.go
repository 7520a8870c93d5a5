// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cards renders one campaign entity as one row of a generated table
// or list. Rows carry a zebra class from a shared RowCount and an optional
// nested notes element.
package cards

import (
	"html"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// Formatter renders entity cards. It only reads from its collaborators.
type Formatter struct {
	Cache types.RelationshipCache
	Index types.EntityIndex
	Icons types.IconSet
	Log   *zap.Logger
}

// NewFormatter returns a Formatter; a nil logger is replaced by a no-op one.
func NewFormatter(cache types.RelationshipCache, index types.EntityIndex, icons types.IconSet, log *zap.Logger) *Formatter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Formatter{Cache: cache, Index: index, Icons: icons, Log: log}
}

// Column counts of the table layouts; notes sub-rows span the full width.
const (
	EncounterColumns      = 2
	EncounterOtherColumns = 1
	GroupColumns          = 4
	NPCColumns            = 5
	RenownColumns         = 2
)

// Encounter renders an encounter row. withLevel adds the leading level cell
// used by the active and new buckets.
func (f *Formatter) Encounter(e *types.Entity, ds types.DataScope, rc *RowCount, withLevel bool) string {
	zebra := rc.Next()
	cols := EncounterOtherColumns

	var b strings.Builder
	b.WriteString(`<tr class="` + zebra + `">`)
	if withLevel {
		cols = EncounterColumns
		b.WriteString(`<td class="level">` + strconv.Itoa(e.Level) + `</td>`)
	}
	b.WriteString(`<td>` + Link(e) + `</td>`)
	b.WriteString("</tr>\n")
	b.WriteString(notesRow(e.StateFor(ds.Active).Notes, zebra, cols))
	return b.String()
}

// Group renders a group row: status icon, name, related chips, last seen.
func (f *Formatter) Group(e *types.Entity, ds types.DataScope, rc *RowCount) string {
	zebra := rc.Next()
	status := f.Cache.GroupStatus(ds.Pattern, e.ID, ds.Active)

	var b strings.Builder
	b.WriteString(`<tr class="` + zebra + `">`)
	b.WriteString(`<td class="icon">` + html.EscapeString(f.Icons.Status(status)) + `</td>`)
	b.WriteString(`<td>` + entityIcon(e) + Link(e) + subtype(e) + `</td>`)
	b.WriteString(`<td class="chips">` + f.Chips(e, ds) + `</td>`)
	b.WriteString(`<td class="last-seen">` + f.LastSeen(e, ds) + `</td>`)
	b.WriteString("</tr>\n")
	b.WriteString(notesRow(e.StateFor(ds.Active).Notes, zebra, GroupColumns))
	return b.String()
}

// NPC renders an NPC row: disposition icon, name, status, related chips,
// last seen.
func (f *Formatter) NPC(e *types.Entity, ds types.DataScope, rc *RowCount) string {
	zebra := rc.Next()
	st := e.StateFor(ds.Active)

	var b strings.Builder
	b.WriteString(`<tr class="` + zebra + `">`)
	b.WriteString(`<td class="icon">` + html.EscapeString(f.Icons.IFF(st.IFF)) + `</td>`)
	b.WriteString(`<td>` + entityIcon(e) + Link(e) + subtype(e) + `</td>`)
	b.WriteString(`<td class="status">`)
	if st.Status != "" {
		b.WriteString(html.EscapeString(f.Icons.Status(st.Status)) + " " + html.EscapeString(st.Status))
	}
	b.WriteString(`</td>`)
	b.WriteString(`<td class="chips">` + f.Chips(e, ds) + `</td>`)
	b.WriteString(`<td class="last-seen">` + f.LastSeen(e, ds) + `</td>`)
	b.WriteString("</tr>\n")
	b.WriteString(notesRow(st.Notes, zebra, NPCColumns))
	return b.String()
}

// Area renders an area list item.
func (f *Formatter) Area(e *types.Entity, ds types.DataScope, rc *RowCount) string {
	return f.listItem(e, ds, rc, "")
}

// Place renders a place list item. The containing area, when it resolves,
// is shown as an extra chip; an unknown area id only logs a diagnostic.
func (f *Formatter) Place(e *types.Entity, ds types.DataScope, rc *RowCount) string {
	var area string
	if e.Area != "" {
		a, ok := f.Index.Resolve(e.Area)
		if ok {
			area = ` <span class="area">` + html.EscapeString(f.Icons.Type(types.TypeArea)) + " " + Link(a) + `</span>`
		} else {
			f.Log.Debug("place area not found",
				zap.String("place", e.ID),
				zap.String("area", e.Area))
		}
	}
	return f.listItem(e, ds, rc, area)
}

// Renown renders a group's renown row.
func (f *Formatter) Renown(r types.RenownEntry, ds types.DataScope, rc *RowCount) string {
	zebra := rc.Next()

	var b strings.Builder
	b.WriteString(`<tr class="` + zebra + `">`)
	b.WriteString(`<td>` + entityIcon(r.Group) + Link(r.Group) + `</td>`)
	b.WriteString(`<td class="renown">` + strconv.Itoa(r.Renown) + `</td>`)
	b.WriteString("</tr>\n")
	b.WriteString(notesRow(r.Group.StateFor(ds.Active).Notes, zebra, RenownColumns))
	return b.String()
}

// listItem renders the shared area/place layout. extra is inserted after
// the subtype.
func (f *Formatter) listItem(e *types.Entity, ds types.DataScope, rc *RowCount, extra string) string {
	zebra := rc.Next()

	var b strings.Builder
	b.WriteString(`<li class="` + zebra + `">`)
	b.WriteString(`<span class="icon">` + html.EscapeString(f.Icons.Type(e.Type)) + `</span> `)
	b.WriteString(entityIcon(e) + Link(e) + subtype(e))
	b.WriteString(extra)
	if chips := f.Chips(e, ds); chips != "" {
		b.WriteString(" " + chips)
	}
	if seen := f.LastSeen(e, ds); seen != "" {
		b.WriteString(` <span class="last-seen">` + seen + `</span>`)
	}
	if notes := strings.TrimSpace(e.StateFor(ds.Active).Notes); notes != "" {
		b.WriteString(`<div class="notes">` + html.EscapeString(notes) + `</div>`)
	}
	b.WriteString("</li>\n")
	return b.String()
}
