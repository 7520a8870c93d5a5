// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package campaign indexes campaign entities from vault documents and
// serves pattern-scoped collections and relationship lookups over them.
package campaign

import (
	"path"
	"sort"
	"strings"

	"github.com/petar-djukic/go-reindex/internal/scope"
	"github.com/petar-djukic/go-reindex/pkg/types"
)

// typeAliases maps accepted type tokens to canonical types. The legacy
// "location" spelling is deliberately absent; tag blocks normalize it
// before resolution.
var typeAliases = map[string]types.EntityType{
	"encounter":  types.TypeEncounter,
	"encounters": types.TypeEncounter,
	"combat":     types.TypeEncounter,
	"group":      types.TypeGroup,
	"groups":     types.TypeGroup,
	"faction":    types.TypeGroup,
	"factions":   types.TypeGroup,
	"npc":        types.TypeNPC,
	"npcs":       types.TypeNPC,
	"character":  types.TypeNPC,
	"characters": types.TypeNPC,
	"area":       types.TypeArea,
	"areas":      types.TypeArea,
	"region":     types.TypeArea,
	"place":      types.TypePlace,
	"places":     types.TypePlace,
	"session":    types.TypeSession,
	"sessions":   types.TypeSession,
}

// ParseType maps a raw type token (any case, optional leading "#" or
// "type/" tag prefix) to its canonical type.
func ParseType(token string) (types.EntityType, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.TrimPrefix(t, "#")
	t = strings.TrimPrefix(t, "type/")
	et, ok := typeAliases[t]
	return et, ok
}

// FromFrontmatter builds the entity described by a document's frontmatter.
// Documents without a recognized type are not entities.
func FromFrontmatter(file string, fm *types.Frontmatter) (*types.Entity, bool) {
	if fm == nil {
		return nil, false
	}
	t, ok := ParseType(fm.Type)
	if !ok {
		return nil, false
	}

	id := strings.TrimSpace(fm.ID)
	if id == "" {
		id = strings.TrimSuffix(file, path.Ext(file))
	}
	name := strings.TrimSpace(fm.Name)
	if name == "" {
		name = strings.TrimSuffix(path.Base(file), path.Ext(file))
	}

	e := &types.Entity{
		ID:       id,
		Name:     name,
		FilePath: file,
		Scope:    scope.ResolveScope(file, fm),
		Type:     t,
		Subtype:  fm.Subtype,
		Icon:     fm.Icon,
		Level:    fm.Level,
		Area:     NormalizeRef(fm.Area),
		Date:     fm.Date,
		State:    fm.State,
	}
	for _, l := range fm.Links {
		if ref := NormalizeRef(l); ref != "" {
			e.Links = append(e.Links, ref)
		}
	}
	return e, true
}

// NormalizeRef strips wiki-link syntax from a reference: "[[a/b|Alias]]"
// becomes "a/b", and a trailing ".md" is dropped.
func NormalizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimPrefix(ref, "[[")
	ref = strings.TrimSuffix(ref, "]]")
	if i := strings.IndexByte(ref, '|'); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref = ref[:i]
	}
	return strings.TrimSuffix(strings.TrimSpace(ref), ".md")
}

// sortEntities orders entities by case-insensitive name, then id.
func sortEntities(list []*types.Entity) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].DisplayName()), strings.ToLower(list[j].DisplayName())
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
}
