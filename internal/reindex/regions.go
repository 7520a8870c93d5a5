// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package reindex

import (
	"github.com/petar-djukic/go-reindex/internal/sections"
	"github.com/petar-djukic/go-reindex/internal/sentinel"
	"github.com/petar-djukic/go-reindex/pkg/types"
)

// region binds a fixed-name sentinel region to the generator for its body.
type region struct {
	sentinel.Region
	generate func(g *sections.Generator, ds types.DataScope) string
}

func defaultRegions() []region {
	generators := map[sentinel.Kind]func(*sections.Generator, types.DataScope) string{
		sentinel.KindEncounters: (*sections.Generator).Encounters,
		sentinel.KindGroups:     (*sections.Generator).Groups,
		sentinel.KindNPCs:       (*sections.Generator).NPCs,
		sentinel.KindPlaces:     (*sections.Generator).Places,
		sentinel.KindRenown:     (*sections.Generator).Renown,
	}
	out := make([]region, 0, len(sentinel.Regions))
	for _, r := range sentinel.Regions {
		out = append(out, region{Region: r, generate: generators[r.Kind]})
	}
	return out
}
