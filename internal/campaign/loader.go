// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package campaign

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// Documents enumerates vault documents and their frontmatter.
type Documents interface {
	Documents(ctx context.Context) ([]string, error)
	Frontmatter(path string) (*types.Frontmatter, error)
}

// Rebuild replaces the index contents with the entities found in docs.
// Documents whose frontmatter cannot be read are skipped with a warning.
// It returns the number of entities indexed.
func (x *Index) Rebuild(ctx context.Context, docs Documents) (int, error) {
	paths, err := docs.Documents(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing documents: %w", err)
	}

	var entities []*types.Entity
	seen := make(map[string]string)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fm, err := docs.Frontmatter(p)
		if err != nil {
			x.log.Warn("skipping document", zap.String("file", p), zap.Error(err))
			continue
		}
		e, ok := FromFrontmatter(p, fm)
		if !ok {
			continue
		}
		if prev, dup := seen[e.ID]; dup {
			x.log.Warn("duplicate entity id; keeping first",
				zap.String("id", e.ID),
				zap.String("kept", prev),
				zap.String("dropped", p))
			continue
		}
		seen[e.ID] = p
		entities = append(entities, e)
	}

	if err := x.Reset(ctx); err != nil {
		return 0, err
	}
	if err := x.Put(ctx, entities...); err != nil {
		return 0, err
	}
	x.log.Debug("entity index rebuilt", zap.Int("entities", len(entities)))
	return len(entities), nil
}
