// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the campaign data model and the collaborator
// interfaces shared across go-reindex packages.
package types

import "strings"

// WildcardScope is the state key that applies to every scope without its
// own entry.
const WildcardScope = "*"

// EntityType is the canonical tag of a campaign entity kind.
type EntityType string

const (
	TypeEncounter EntityType = "encounter"
	TypeGroup     EntityType = "group"
	TypeNPC       EntityType = "npc"
	TypeArea      EntityType = "area"
	TypePlace     EntityType = "place"
	TypeSession   EntityType = "session"
)

// EntityTypes lists the canonical types in rendering order. Related-entity
// chips are emitted in this order.
var EntityTypes = []EntityType{
	TypeEncounter,
	TypeGroup,
	TypeNPC,
	TypeArea,
	TypePlace,
	TypeSession,
}

// Valid reports whether t is one of the canonical types.
func (t EntityType) Valid() bool {
	for _, c := range EntityTypes {
		if c == t {
			return true
		}
	}
	return false
}

// Disposition is the bucket an NPC falls into based on its iff field.
type Disposition string

const (
	DispositionFamily  Disposition = "family"
	DispositionAllies  Disposition = "allies"
	DispositionEnemies Disposition = "enemies"
	DispositionOther   Disposition = "other"
)

// DispositionOf maps an iff value to its disposition bucket.
func DispositionOf(iff string) Disposition {
	switch strings.ToLower(strings.TrimSpace(iff)) {
	case "family":
		return DispositionFamily
	case "friend", "friendly", "ally", "allied":
		return DispositionAllies
	case "enemy", "hostile", "foe":
		return DispositionEnemies
	default:
		return DispositionOther
	}
}

// ScopeState holds the fields of an entity that vary per scope.
type ScopeState struct {
	Status string `yaml:"status,omitempty" json:"status,omitempty"`
	IFF    string `yaml:"iff,omitempty" json:"iff,omitempty"`
	Notes  string `yaml:"notes,omitempty" json:"notes,omitempty"`
	Renown *int   `yaml:"renown,omitempty" json:"renown,omitempty"`
}

// Entity is a campaign entity as read from the vault. Entities are owned by
// the index and cache; renderers only read them.
type Entity struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	FilePath string     `json:"filePath"`
	Scope    string     `json:"scope"`
	Type     EntityType `json:"type"`
	Subtype  string     `json:"subtype,omitempty"`
	Icon     string     `json:"icon,omitempty"`
	Level    int        `json:"level,omitempty"`
	Area     string     `json:"area,omitempty"`  // Place only: id of the containing area
	Date     string     `json:"date,omitempty"`  // Session only: sort key for last-seen
	Links    []string   `json:"links,omitempty"` // Ids of directly related entities

	State map[string]ScopeState `json:"state,omitempty"`
}

// StateFor returns the entity's state for scope, falling back to the
// wildcard entry when the scope has none.
func (e *Entity) StateFor(scope string) ScopeState {
	if st, ok := e.State[scope]; ok {
		return st
	}
	if st, ok := e.State[WildcardScope]; ok {
		return st
	}
	return ScopeState{}
}

// HasScopedState reports whether the entity carries a state entry keyed by
// exactly scope (the wildcard entry does not count).
func (e *Entity) HasScopedState(scope string) bool {
	if scope == WildcardScope {
		return false
	}
	_, ok := e.State[scope]
	return ok
}

// DisplayName returns the entity name, or its id when unnamed.
func (e *Entity) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// RenownEntry pairs a group with its renown in one scope.
type RenownEntry struct {
	Group  *Entity
	Renown int
}
