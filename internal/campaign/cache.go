// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package campaign

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/internal/scope"
	"github.com/petar-djukic/go-reindex/pkg/types"
)

// Cache serves pattern-scoped entity collections. Each pattern gets a
// snapshot built by Precompute (or lazily on first query); Clear drops all
// snapshots and the loaded entity set. Cache is not safe for concurrent use.
type Cache struct {
	source Source
	log    *zap.Logger

	all       map[types.EntityType][]*types.Entity
	snapshots map[string]*snapshot

	precomputes int
}

// snapshot is the precomputed view of one scope pattern.
type snapshot struct {
	re       *regexp.Regexp
	byType   map[types.EntityType][]*types.Entity
	byID     map[string]*types.Entity
	related  map[string]map[types.EntityType][]*types.Entity
	lastSeen map[string]*types.Entity
}

var _ types.RelationshipCache = (*Cache)(nil)

// NewCache returns an empty cache reading from source.
func NewCache(source Source, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		source:    source,
		log:       log,
		snapshots: make(map[string]*snapshot),
	}
}

// Clear drops every snapshot and the loaded entity set.
func (c *Cache) Clear() {
	c.all = nil
	c.snapshots = make(map[string]*snapshot)
}

// Precomputes returns how many snapshots have been built since creation.
func (c *Cache) Precomputes() int {
	return c.precomputes
}

// Precompute builds the snapshot for pattern, replacing any existing one.
func (c *Cache) Precompute(pattern string) error {
	if err := c.load(); err != nil {
		return err
	}
	c.snapshots[pattern] = c.build(pattern)
	c.precomputes++
	c.log.Debug("relationships precomputed", zap.String("pattern", pattern))
	return nil
}

func (c *Cache) load() error {
	if c.all != nil {
		return nil
	}
	all := make(map[types.EntityType][]*types.Entity, len(types.EntityTypes))
	for _, t := range types.EntityTypes {
		list, err := c.source.All(t)
		if err != nil {
			return fmt.Errorf("loading %s entities: %w", t, err)
		}
		sortEntities(list)
		all[t] = list
	}
	c.all = all
	return nil
}

// snap returns the snapshot for pattern, building it if needed.
func (c *Cache) snap(pattern string) *snapshot {
	if s, ok := c.snapshots[pattern]; ok {
		return s
	}
	c.log.Debug("pattern queried before precompute", zap.String("pattern", pattern))
	if err := c.Precompute(pattern); err != nil {
		c.log.Warn("precompute failed", zap.String("pattern", pattern), zap.Error(err))
		return &snapshot{re: scope.CompilePattern(pattern)}
	}
	return c.snapshots[pattern]
}

// inPattern reports whether e belongs to the pattern: its own scope matches,
// or it carries state keyed by a matching scope.
func inPattern(re *regexp.Regexp, e *types.Entity) bool {
	if re.MatchString(e.Scope) {
		return true
	}
	for key := range e.State {
		if key != types.WildcardScope && re.MatchString(key) {
			return true
		}
	}
	return false
}

func (c *Cache) build(pattern string) *snapshot {
	s := &snapshot{
		re:       scope.CompilePattern(pattern),
		byType:   make(map[types.EntityType][]*types.Entity),
		byID:     make(map[string]*types.Entity),
		related:  make(map[string]map[types.EntityType][]*types.Entity),
		lastSeen: make(map[string]*types.Entity),
	}

	// Rank gives every in-pattern entity its position in name order so
	// relationship lists come out in the same stable order.
	rank := make(map[string]int)
	var members []*types.Entity
	for _, t := range types.EntityTypes {
		for _, e := range c.all[t] {
			if !inPattern(s.re, e) {
				continue
			}
			s.byType[t] = append(s.byType[t], e)
			s.byID[e.ID] = e
			members = append(members, e)
		}
	}
	sortEntities(members)
	for i, e := range members {
		rank[e.ID] = i
	}

	edges := make(map[string]map[string]bool)
	link := func(a, b string) {
		if a == b {
			return
		}
		if edges[a] == nil {
			edges[a] = make(map[string]bool)
		}
		edges[a][b] = true
	}
	for _, e := range members {
		for _, ref := range e.Links {
			target := s.lookup(ref)
			if target == nil {
				continue
			}
			link(e.ID, target.ID)
			link(target.ID, e.ID)
		}
	}

	for id, peers := range edges {
		byType := make(map[types.EntityType][]*types.Entity)
		for peer := range peers {
			p := s.byID[peer]
			byType[p.Type] = append(byType[p.Type], p)
		}
		for t := range byType {
			list := byType[t]
			sort.Slice(list, func(i, j int) bool { return rank[list[i].ID] < rank[list[j].ID] })
		}
		s.related[id] = byType
	}

	for _, session := range s.byType[types.TypeSession] {
		for peer := range edges[session.ID] {
			if cur, ok := s.lastSeen[peer]; !ok || laterSession(session, cur) {
				s.lastSeen[peer] = session
			}
		}
	}
	return s
}

// lookup resolves a link reference within the snapshot by id, then by
// case-insensitive name, then by last id segment.
func (s *snapshot) lookup(ref string) *types.Entity {
	if e, ok := s.byID[ref]; ok {
		return e
	}
	var byName, bySuffix *types.Entity
	for id, e := range s.byID {
		if strings.EqualFold(e.Name, ref) && (byName == nil || id < byName.ID) {
			byName = e
		}
		if strings.HasSuffix(id, "/"+ref) && (bySuffix == nil || id < bySuffix.ID) {
			bySuffix = e
		}
	}
	if byName != nil {
		return byName
	}
	return bySuffix
}

// laterSession orders sessions by date, then name.
func laterSession(a, b *types.Entity) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return strings.ToLower(a.DisplayName()) > strings.ToLower(b.DisplayName())
}

// Encounters returns the encounters in pattern.
func (c *Cache) Encounters(pattern string) []*types.Entity {
	return c.snap(pattern).byType[types.TypeEncounter]
}

// Groups returns the groups in pattern.
func (c *Cache) Groups(pattern string) []*types.Entity {
	return c.snap(pattern).byType[types.TypeGroup]
}

// GroupStatus returns the lower-cased status of group id in scope, or ""
// when the group has none.
func (c *Cache) GroupStatus(pattern, id, scopeID string) string {
	e, ok := c.snap(pattern).byID[id]
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(e.StateFor(scopeID).Status))
}

// NPCs returns the NPCs in pattern.
func (c *Cache) NPCs(pattern string) []*types.Entity {
	return c.snap(pattern).byType[types.TypeNPC]
}

// NPCsByDisposition returns the NPCs in pattern whose iff in scope falls
// into disposition d.
func (c *Cache) NPCsByDisposition(pattern, scopeID string, d types.Disposition) []*types.Entity {
	var out []*types.Entity
	for _, e := range c.snap(pattern).byType[types.TypeNPC] {
		if types.DispositionOf(e.StateFor(scopeID).IFF) == d {
			out = append(out, e)
		}
	}
	return out
}

// Areas returns the areas in pattern.
func (c *Cache) Areas(pattern string) []*types.Entity {
	return c.snap(pattern).byType[types.TypeArea]
}

// Places returns the places in pattern.
func (c *Cache) Places(pattern string) []*types.Entity {
	return c.snap(pattern).byType[types.TypePlace]
}

// GroupRenown returns the groups in pattern that have a renown value in
// scope, highest renown first; ties keep name order.
func (c *Cache) GroupRenown(pattern, scopeID string) []types.RenownEntry {
	var out []types.RenownEntry
	for _, g := range c.snap(pattern).byType[types.TypeGroup] {
		if r := g.StateFor(scopeID).Renown; r != nil {
			out = append(out, types.RenownEntry{Group: g, Renown: *r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Renown > out[j].Renown })
	return out
}

// RelatedByType returns id's related entities in pattern grouped by type.
func (c *Cache) RelatedByType(pattern, id string) map[types.EntityType][]*types.Entity {
	return c.snap(pattern).related[id]
}

// Related returns id's related entities of type t in pattern.
func (c *Cache) Related(pattern, id string, t types.EntityType) []*types.Entity {
	return c.snap(pattern).related[id][t]
}

// LastSeen returns the latest session in pattern linked to id, or nil.
func (c *Cache) LastSeen(pattern, id string) *types.Entity {
	return c.snap(pattern).lastSeen[id]
}

// ActiveInScope returns every entity of type t, regardless of pattern,
// whose own scope is scopeID or that carries state keyed by scopeID.
func (c *Cache) ActiveInScope(t types.EntityType, scopeID string) []*types.Entity {
	if err := c.load(); err != nil {
		c.log.Warn("loading entities failed", zap.Error(err))
		return nil
	}
	var out []*types.Entity
	for _, e := range c.all[t] {
		if e.Scope == scopeID || e.HasScopedState(scopeID) {
			out = append(out, e)
		}
	}
	return out
}
