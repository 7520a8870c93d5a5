// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, "👤", s.Type(types.TypeNPC))
	assert.Equal(t, "🟢", s.Status(""))
	assert.Equal(t, "🟢", s.Status(" Active "))
	assert.Equal(t, "🗡️", s.IFF("ENEMY"))
	assert.Equal(t, "▫️", s.IFF("unknown"))
	assert.Equal(t, "▫️", s.Type(types.EntityType("vehicle")))
}

func TestWithOverrides(t *testing.T) {
	base := Default()
	s := base.WithOverrides(map[string]string{
		"type.npc":    "N",
		"Status.Dead": "X",
		"iff.rival":   "R",
		"fallback":    "?",
		"bogus":       "ignored",
		"color.red":   "ignored",
	})

	assert.Equal(t, "N", s.Type(types.TypeNPC))
	assert.Equal(t, "X", s.Status("dead"))
	assert.Equal(t, "R", s.IFF("rival"))
	assert.Equal(t, "?", s.Status("unheard-of"))

	// The base table is not modified.
	assert.Equal(t, "👤", base.Type(types.TypeNPC))
	assert.Equal(t, "▫️", base.Status("unheard-of"))
}
