// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/petar-djukic/go-reindex/internal/campaign"
	"github.com/petar-djukic/go-reindex/internal/icons"
	"github.com/petar-djukic/go-reindex/internal/scope"
	"github.com/petar-djukic/go-reindex/pkg/types"
)

var townA = types.DataScope{Active: "townA", Pattern: "townA", Regex: scope.CompilePattern("townA")}

func newFormatter(t *testing.T, log *zap.Logger, entities ...*types.Entity) *Formatter {
	t.Helper()
	mem := campaign.NewMemory(entities...)
	cache := campaign.NewCache(mem, log)
	require.NoError(t, cache.Precompute(townA.Pattern))
	return NewFormatter(cache, mem, icons.Default(), log)
}

func TestRowCount_Alternates(t *testing.T) {
	rc := &RowCount{}
	assert.Equal(t, ClassEven, rc.Next())
	assert.Equal(t, ClassOdd, rc.Next())
	assert.Equal(t, ClassEven, rc.Next())
	assert.Equal(t, 3, rc.Count())

	// A fresh counter starts at even again.
	assert.Equal(t, ClassEven, (&RowCount{}).Next())
}

func TestEncounter(t *testing.T) {
	e := &types.Entity{ID: "townA/enc/ambush", Name: "Ambush", FilePath: "townA/enc/ambush.md", Scope: "townA",
		Type: types.TypeEncounter, Level: 3}
	f := newFormatter(t, nil, e)
	rc := &RowCount{}

	withLevel := f.Encounter(e, townA, rc, true)
	assert.Equal(t, `<tr class="even"><td class="level">3</td><td><a class="internal-link" href="townA/enc/ambush.md">Ambush</a></td></tr>`+"\n", withLevel)

	without := f.Encounter(e, townA, rc, false)
	assert.Equal(t, `<tr class="odd"><td><a class="internal-link" href="townA/enc/ambush.md">Ambush</a></td></tr>`+"\n", without)
}

func TestNotesRow_FallsBackToWildcard(t *testing.T) {
	e := &types.Entity{ID: "e", Name: "E", Scope: "townA", Type: types.TypeEncounter,
		State: map[string]types.ScopeState{"*": {Notes: "watch <out>"}}}
	f := newFormatter(t, nil, e)
	rc := &RowCount{}
	rc.Next()

	got := f.Encounter(e, townA, rc, true)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `<tr class="odd">`))
	assert.Equal(t, `<tr class="odd notes"><td colspan="2">watch &lt;out&gt;</td></tr>`, lines[1])
}

func TestNotesRow_ScopedEntryShadowsWildcard(t *testing.T) {
	e := &types.Entity{ID: "e", Name: "E", Scope: "townA", Type: types.TypeEncounter,
		State: map[string]types.ScopeState{"*": {Notes: "default"}, "townA": {Status: "active"}}}
	f := newFormatter(t, nil, e)

	got := f.Encounter(e, townA, &RowCount{}, true)
	assert.NotContains(t, got, "notes")
}

func TestGroupAndNPC(t *testing.T) {
	guild := &types.Entity{ID: "guild", Name: "Guild", FilePath: "townA/guild.md", Scope: "townA", Type: types.TypeGroup,
		Subtype: "merchants", Icon: "💰",
		State: map[string]types.ScopeState{"townA": {Status: "defunct", Notes: "closed"}}}
	bob := &types.Entity{ID: "bob", Name: "Bob", FilePath: "townA/bob.md", Scope: "townA", Type: types.TypeNPC,
		Links: []string{"guild"},
		State: map[string]types.ScopeState{"*": {IFF: "enemy", Status: "dead"}}}
	s1 := &types.Entity{ID: "s1", Name: "Session 1", FilePath: "townA/s1.md", Scope: "townA", Type: types.TypeSession,
		Date: "2026-01-01", Links: []string{"bob"}}
	f := newFormatter(t, nil, guild, bob, s1)

	group := f.Group(guild, townA, &RowCount{})
	assert.Equal(t,
		`<tr class="even"><td class="icon">⚰️</td><td>💰 <a class="internal-link" href="townA/guild.md">Guild</a> <span class="subtype">merchants</span></td>`+
			`<td class="chips"><span class="chip npc">👤 <a class="internal-link" href="townA/bob.md">Bob</a></span></td><td class="last-seen"></td></tr>`+"\n"+
			`<tr class="even notes"><td colspan="4">closed</td></tr>`+"\n",
		group)

	npc := f.NPC(bob, townA, &RowCount{})
	assert.Equal(t,
		`<tr class="even"><td class="icon">🗡️</td><td><a class="internal-link" href="townA/bob.md">Bob</a></td>`+
			`<td class="status">💀 dead</td>`+
			`<td class="chips"><span class="chip group">🛡️ <a class="internal-link" href="townA/guild.md">Guild</a></span></td>`+
			`<td class="last-seen"><a class="internal-link" href="townA/s1.md">Session 1</a></td></tr>`+"\n",
		npc)
}

func TestPlace_ResolvesArea(t *testing.T) {
	docks := &types.Entity{ID: "docks", Name: "Docks", FilePath: "townA/docks.md", Scope: "townA", Type: types.TypeArea}
	inn := &types.Entity{ID: "inn", Name: "Inn", FilePath: "townA/inn.md", Scope: "townA", Type: types.TypePlace,
		Subtype: "tavern", Area: "docks", State: map[string]types.ScopeState{"townA": {Notes: "rooms"}}}
	f := newFormatter(t, nil, docks, inn)

	got := f.Place(inn, townA, &RowCount{})
	assert.Equal(t,
		`<li class="even"><span class="icon">📍</span> <a class="internal-link" href="townA/inn.md">Inn</a> <span class="subtype">tavern</span>`+
			` <span class="area">🗺️ <a class="internal-link" href="townA/docks.md">Docks</a></span>`+
			`<div class="notes">rooms</div></li>`+"\n",
		got)

	area := f.Area(docks, townA, &RowCount{})
	assert.Equal(t, `<li class="even"><span class="icon">🗺️</span> <a class="internal-link" href="townA/docks.md">Docks</a></li>`+"\n", area)
}

func TestPlace_UnresolvedAreaLogsAndRenders(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	inn := &types.Entity{ID: "inn", Name: "Inn", FilePath: "townA/inn.md", Scope: "townA", Type: types.TypePlace, Area: "atlantis"}
	f := newFormatter(t, zap.New(core), inn)

	got := f.Place(inn, townA, &RowCount{})
	assert.NotContains(t, got, `class="area"`)
	assert.Contains(t, got, ">Inn</a>")

	entries := logs.FilterMessage("place area not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "atlantis", entries[0].ContextMap()["area"])
}

func TestRenown(t *testing.T) {
	five := 5
	watch := &types.Entity{ID: "watch", Name: "Watch", FilePath: "w.md", Scope: "townA", Type: types.TypeGroup}
	f := newFormatter(t, nil, watch)

	got := f.Renown(types.RenownEntry{Group: watch, Renown: five}, townA, &RowCount{})
	assert.Equal(t, `<tr class="even"><td><a class="internal-link" href="w.md">Watch</a></td><td class="renown">5</td></tr>`+"\n", got)
}

func TestLink_EscapesAndFallsBackToID(t *testing.T) {
	assert.Equal(t, `<a class="internal-link" href="x/y">A &amp; B</a>`, Link(&types.Entity{ID: "x/y", Name: "A & B"}))
	assert.Equal(t, `<a class="internal-link" href="x/y">x/y</a>`, Link(&types.Entity{ID: "x/y"}))
}
