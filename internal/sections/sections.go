// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sections generates the bodies of sentinel regions from the
// campaign data visible to a document's scope. Each generator classifies
// entities into buckets and renders every non-empty bucket as a heading
// plus one table or list.
package sections

import (
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/internal/cards"
	"github.com/petar-djukic/go-reindex/pkg/types"
)

// NonePlaceholder is the whole body of a section with no entities.
const NonePlaceholder = "_None_"

// Generator renders section bodies. It reads from the cache and index and
// never mutates entity data.
type Generator struct {
	cache types.RelationshipCache
	index types.EntityIndex
	cards *cards.Formatter
	log   *zap.Logger
}

// New returns a Generator rendering rows with f.
func New(f *cards.Formatter) *Generator {
	return &Generator{cache: f.Cache, index: f.Index, cards: f, log: f.Log}
}

// bucket is one named subset of a section. header is the table header row;
// an empty header selects the list layout.
type bucket struct {
	key     string
	heading string
	header  string
	size    int
	row     func(i int, rc *cards.RowCount) string
}

// render emits each non-empty bucket with its own RowCount, or the none
// placeholder when every bucket is empty. The body starts with a newline so
// the begin marker keeps its own line.
func render(section string, buckets []bucket) string {
	var parts []string
	for _, bk := range buckets {
		if bk.size == 0 {
			continue
		}
		rc := &cards.RowCount{}
		class := section + " " + bk.key

		var b strings.Builder
		b.WriteString("### " + bk.heading + "\n\n")
		if bk.header == "" {
			b.WriteString(`<ul class="` + class + `">` + "\n")
			for i := 0; i < bk.size; i++ {
				b.WriteString(bk.row(i, rc))
			}
			b.WriteString("</ul>\n")
		} else {
			b.WriteString(`<table class="` + class + `">` + "\n")
			b.WriteString("<thead>" + bk.header + "</thead>\n")
			b.WriteString("<tbody>\n")
			for i := 0; i < bk.size; i++ {
				b.WriteString(bk.row(i, rc))
			}
			b.WriteString("</tbody>\n</table>\n")
		}
		parts = append(parts, b.String())
	}

	if len(parts) == 0 {
		return "\n" + NonePlaceholder + "\n"
	}
	return "\n" + strings.Join(parts, "\n")
}

const (
	encounterHeader      = `<tr><th class="level">Level</th><th>Encounter</th></tr>`
	encounterOtherHeader = `<tr><th>Encounter</th></tr>`
	groupHeader          = `<tr><th class="icon"></th><th>Group</th><th>Related</th><th>Last Seen</th></tr>`
	npcHeader            = `<tr><th class="icon"></th><th>NPC</th><th>Status</th><th>Related</th><th>Last Seen</th></tr>`
	renownHeader         = `<tr><th>Group</th><th class="renown">Renown</th></tr>`
)

// Encounters buckets encounters by their status in the active scope:
// exactly "active", exactly "new", or anything else.
func (g *Generator) Encounters(ds types.DataScope) string {
	var active, fresh, other []*types.Entity
	for _, e := range g.cache.Encounters(ds.Pattern) {
		switch e.StateFor(ds.Active).Status {
		case "active":
			active = append(active, e)
		case "new":
			fresh = append(fresh, e)
		default:
			other = append(other, e)
		}
	}

	encounterRows := func(list []*types.Entity, withLevel bool) func(int, *cards.RowCount) string {
		return func(i int, rc *cards.RowCount) string {
			return g.cards.Encounter(list[i], ds, rc, withLevel)
		}
	}
	return render("encounters", []bucket{
		{key: "active", heading: "Active Encounters", header: encounterHeader, size: len(active), row: encounterRows(active, true)},
		{key: "new", heading: "New Encounters", header: encounterHeader, size: len(fresh), row: encounterRows(fresh, true)},
		{key: "other", heading: "Other Encounters", header: encounterOtherHeader, size: len(other), row: encounterRows(other, false)},
	})
}

// Groups buckets groups by the cache's scope-aware status. A group with no
// status is active.
func (g *Generator) Groups(ds types.DataScope) string {
	var active, defunct, other []*types.Entity
	for _, e := range g.cache.Groups(ds.Pattern) {
		switch g.cache.GroupStatus(ds.Pattern, e.ID, ds.Active) {
		case "", "active":
			active = append(active, e)
		case "defunct":
			defunct = append(defunct, e)
		default:
			other = append(other, e)
		}
	}

	groupRows := func(list []*types.Entity) func(int, *cards.RowCount) string {
		return func(i int, rc *cards.RowCount) string {
			return g.cards.Group(list[i], ds, rc)
		}
	}
	return render("groups", []bucket{
		{key: "active", heading: "Active Groups", header: groupHeader, size: len(active), row: groupRows(active)},
		{key: "defunct", heading: "Defunct Groups", header: groupHeader, size: len(defunct), row: groupRows(defunct)},
		{key: "other", heading: "Other Groups", header: groupHeader, size: len(other), row: groupRows(other)},
	})
}

// NPCs queries each disposition bucket from the cache independently.
func (g *Generator) NPCs(ds types.DataScope) string {
	dispositions := []struct {
		d       types.Disposition
		heading string
	}{
		{types.DispositionFamily, "Family"},
		{types.DispositionAllies, "Allies"},
		{types.DispositionEnemies, "Enemies"},
		{types.DispositionOther, "Other NPCs"},
	}

	buckets := make([]bucket, 0, len(dispositions))
	for _, disp := range dispositions {
		list := g.cache.NPCsByDisposition(ds.Pattern, ds.Active, disp.d)
		buckets = append(buckets, bucket{
			key:     string(disp.d),
			heading: disp.heading,
			header:  npcHeader,
			size:    len(list),
			row: func(i int, rc *cards.RowCount) string {
				return g.cards.NPC(list[i], ds, rc)
			},
		})
	}
	return render("npcs", buckets)
}

// Places lists areas and places, each narrowed by the scope's source-path
// filter.
func (g *Generator) Places(ds types.DataScope) string {
	areas := filterPaths(g.cache.Areas(ds.Pattern), ds)
	places := filterPaths(g.cache.Places(ds.Pattern), ds)

	return render("places", []bucket{
		{key: "areas", heading: "Areas", size: len(areas), row: func(i int, rc *cards.RowCount) string {
			return g.cards.Area(areas[i], ds, rc)
		}},
		{key: "places", heading: "Places", size: len(places), row: func(i int, rc *cards.RowCount) string {
			return g.cards.Place(places[i], ds, rc)
		}},
	})
}

// Renown lists group renown in the active scope.
func (g *Generator) Renown(ds types.DataScope) string {
	entries := g.cache.GroupRenown(ds.Pattern, ds.Active)
	return render("renown", []bucket{
		{key: "groups", heading: "Renown", header: renownHeader, size: len(entries), row: func(i int, rc *cards.RowCount) string {
			return g.cards.Renown(entries[i], ds, rc)
		}},
	})
}

func filterPaths(list []*types.Entity, ds types.DataScope) []*types.Entity {
	if ds.Filter == nil {
		return list
	}
	var out []*types.Entity
	for _, e := range list {
		if ds.Includes(e.FilePath) {
			out = append(out, e)
		}
	}
	return out
}
