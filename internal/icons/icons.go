// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package icons maps entity types, status values, and iff values to the
// icons shown in generated sections.
package icons

import (
	"strings"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// Set is a lookup table of icons. Keys are lower-cased.
type Set struct {
	types    map[types.EntityType]string
	statuses map[string]string
	iffs     map[string]string
	fallback string
}

var _ types.IconSet = (*Set)(nil)

// Default returns the built-in icon table.
func Default() *Set {
	return &Set{
		types: map[types.EntityType]string{
			types.TypeEncounter: "⚔️",
			types.TypeGroup:     "🛡️",
			types.TypeNPC:       "👤",
			types.TypeArea:      "🗺️",
			types.TypePlace:     "📍",
			types.TypeSession:   "📅",
		},
		statuses: map[string]string{
			"active":   "🟢",
			"new":      "✨",
			"defunct":  "⚰️",
			"dead":     "💀",
			"missing":  "❓",
			"resolved": "✔️",
		},
		iffs: map[string]string{
			"family":   "🏠",
			"friend":   "🤝",
			"friendly": "🤝",
			"ally":     "🤝",
			"enemy":    "🗡️",
			"hostile":  "🗡️",
			"neutral":  "⚖️",
		},
		fallback: "▫️",
	}
}

// WithOverrides returns a copy of s with entries replaced from overrides.
// Keys take the form "type.npc", "status.dead", "iff.enemy", or "fallback".
// Unknown key prefixes are ignored.
func (s *Set) WithOverrides(overrides map[string]string) *Set {
	out := &Set{
		types:    make(map[types.EntityType]string, len(s.types)),
		statuses: make(map[string]string, len(s.statuses)),
		iffs:     make(map[string]string, len(s.iffs)),
		fallback: s.fallback,
	}
	for k, v := range s.types {
		out.types[k] = v
	}
	for k, v := range s.statuses {
		out.statuses[k] = v
	}
	for k, v := range s.iffs {
		out.iffs[k] = v
	}

	for key, icon := range overrides {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "fallback" {
			out.fallback = icon
			continue
		}
		kind, name, ok := strings.Cut(key, ".")
		if !ok {
			continue
		}
		switch kind {
		case "type":
			out.types[types.EntityType(name)] = icon
		case "status":
			out.statuses[name] = icon
		case "iff":
			out.iffs[name] = icon
		}
	}
	return out
}

// Type returns the icon of an entity type.
func (s *Set) Type(t types.EntityType) string {
	if icon, ok := s.types[t]; ok {
		return icon
	}
	return s.fallback
}

// Status returns the icon of a status value. An empty status reads as
// active.
func (s *Set) Status(status string) string {
	status = normalize(status)
	if status == "" {
		status = "active"
	}
	if icon, ok := s.statuses[status]; ok {
		return icon
	}
	return s.fallback
}

// IFF returns the icon of an iff value.
func (s *Set) IFF(iff string) string {
	if icon, ok := s.iffs[normalize(iff)]; ok {
		return icon
	}
	return s.fallback
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
