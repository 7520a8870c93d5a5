// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		token string
		want  types.EntityType
		ok    bool
	}{
		{"npc", types.TypeNPC, true},
		{" NPCs ", types.TypeNPC, true},
		{"#faction", types.TypeGroup, true},
		{"type/area", types.TypeArea, true},
		{"place", types.TypePlace, true},
		{"location", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}
}

func TestNormalizeRef(t *testing.T) {
	assert.Equal(t, "a/b", NormalizeRef("[[a/b|Alias]]"))
	assert.Equal(t, "a/b", NormalizeRef(" a/b.md "))
	assert.Equal(t, "a/b", NormalizeRef("[[a/b#Heading]]"))
	assert.Equal(t, "", NormalizeRef("[[]]"))
}

func TestFromFrontmatter(t *testing.T) {
	_, ok := FromFrontmatter("x.md", nil)
	assert.False(t, ok)
	_, ok = FromFrontmatter("x.md", &types.Frontmatter{Type: "spaceship"})
	assert.False(t, ok)

	e, ok := FromFrontmatter("townA/places/inn.md", &types.Frontmatter{
		Type:    "place",
		Name:    "The Prancing Pony",
		Scope:   "bree",
		Subtype: "tavern",
		Area:    "[[townA/areas/docks|Docks]]",
		State:   map[string]types.ScopeState{"*": {Notes: "n"}},
	})
	require.True(t, ok)
	assert.Equal(t, "townA/places/inn", e.ID)
	assert.Equal(t, "The Prancing Pony", e.Name)
	assert.Equal(t, "bree", e.Scope)
	assert.Equal(t, types.TypePlace, e.Type)
	assert.Equal(t, "tavern", e.Subtype)
	assert.Equal(t, "townA/areas/docks", e.Area)
	assert.Equal(t, "n", e.StateFor("anything").Notes)
}

func TestEntityStateFallback(t *testing.T) {
	e := &types.Entity{State: map[string]types.ScopeState{
		"*":     {Status: "active", IFF: "neutral", Notes: "default"},
		"townA": {Status: "dead"},
	}}

	assert.Equal(t, "dead", e.StateFor("townA").Status)
	assert.Equal(t, "", e.StateFor("townA").Notes)
	assert.Equal(t, "default", e.StateFor("townB").Notes)
	assert.Equal(t, "neutral", e.StateFor("townB").IFF)
	assert.Equal(t, types.ScopeState{}, (&types.Entity{}).StateFor("townA"))
}
