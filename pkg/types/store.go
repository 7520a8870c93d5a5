// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "context"

// DocumentStore enumerates, reads, and writes vault documents. Paths are
// vault-relative with forward slashes.
type DocumentStore interface {
	// ListGeneratedIndexFiles returns the documents flagged as generated
	// indices, in a stable order.
	ListGeneratedIndexFiles(ctx context.Context) ([]string, error)
	ReadFile(path string) (string, error)
	// WriteFile replaces the whole document in a single atomic operation.
	WriteFile(path, text string) error
	// Frontmatter returns the parsed header; documents without one yield an
	// empty Frontmatter, not an error.
	Frontmatter(path string) (*Frontmatter, error)
}

// RelationshipCache serves pattern-scoped entity collections and
// relationship lookups. Collections are returned in a stable order.
type RelationshipCache interface {
	Clear()
	Precompute(pattern string) error

	Encounters(pattern string) []*Entity
	Groups(pattern string) []*Entity
	GroupStatus(pattern, id, scope string) string
	NPCs(pattern string) []*Entity
	NPCsByDisposition(pattern, scope string, d Disposition) []*Entity
	Areas(pattern string) []*Entity
	Places(pattern string) []*Entity
	GroupRenown(pattern, scope string) []RenownEntry

	RelatedByType(pattern, id string) map[EntityType][]*Entity
	Related(pattern, id string, t EntityType) []*Entity
	LastSeen(pattern, id string) *Entity

	// ActiveInScope returns entities of type t whose own scope is scope or
	// that carry state keyed by scope.
	ActiveInScope(t EntityType, scope string) []*Entity
}

// EntityIndex resolves entity ids and raw type tokens.
type EntityIndex interface {
	Resolve(id string) (*Entity, bool)
	ResolveType(token string) (EntityType, bool)
}

// IconSet maps entity types and status values to display icons.
type IconSet interface {
	Type(t EntityType) string
	Status(status string) string
	IFF(iff string) string
}
