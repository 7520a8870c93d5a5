// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package campaign

import (
	"strings"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// Source supplies every entity of a type to the cache.
type Source interface {
	All(t types.EntityType) ([]*types.Entity, error)
}

// Memory is an in-process entity source and index over a fixed entity set.
type Memory struct {
	entities []*types.Entity
}

var (
	_ Source            = (*Memory)(nil)
	_ types.EntityIndex = (*Memory)(nil)
)

// NewMemory returns a Memory holding entities in the given order.
func NewMemory(entities ...*types.Entity) *Memory {
	return &Memory{entities: entities}
}

// All returns the entities of type t ordered by name, then id.
func (m *Memory) All(t types.EntityType) ([]*types.Entity, error) {
	var out []*types.Entity
	for _, e := range m.entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out, nil
}

// Resolve looks an entity up by id, then by case-insensitive name.
func (m *Memory) Resolve(ref string) (*types.Entity, bool) {
	ref = NormalizeRef(ref)
	if ref == "" {
		return nil, false
	}
	for _, e := range m.entities {
		if e.ID == ref {
			return e, true
		}
	}
	for _, e := range m.entities {
		if strings.EqualFold(e.Name, ref) {
			return e, true
		}
	}
	return nil, false
}

// ResolveType maps a raw type token to a canonical type.
func (m *Memory) ResolveType(token string) (types.EntityType, bool) {
	return ParseType(token)
}
