// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package reindex defines the public interface for go-reindex, which keeps
// the generated sections of a campaign vault's index documents up to date.
package reindex

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrInvalidConfig is returned by New when the configuration is unusable.
var ErrInvalidConfig = errors.New("invalid config")

// Config configures a Reindexer.
type Config struct {
	VaultDir    string            // Vault root directory (required)
	IndexDB     string            // SQLite entity index path; empty keeps the index in memory
	DryRun      bool              // Report changes and diffs without writing
	Commit      bool              // Commit regenerated files when the vault is in a git repository
	DirtyCommit bool              // With Commit, first save manual edits to index files in their own commit
	Icons       map[string]string // Icon overrides, keyed "type.npc", "status.dead", "iff.enemy", "fallback"
	Logger      *zap.Logger       // Defaults to a no-op logger
}

// FileResult is the outcome for one generated index document.
type FileResult struct {
	Path    string   // Vault-relative path
	Scope   string   // Active scope of the document
	Pattern string   // Scope pattern the document aggregates
	Changed bool     // Text changed (written unless DryRun)
	Regions []string // Region kinds regenerated
	Skipped []string // Tag-connection type tokens left as written
	Diff    string   // Line diff, set on changed files in dry-run mode
}

// Result holds the outcome of a Reindexer.Run invocation.
type Result struct {
	Files     []FileResult
	Groups    int  // Distinct scope patterns processed
	Entities  int  // Entities indexed from the vault
	Committed bool // A regeneration commit was created
}

// Changed returns the paths of the documents whose text changed.
func (r *Result) Changed() []string {
	var out []string
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f.Path)
		}
	}
	return out
}

// Reindexer regenerates the index documents of one vault.
type Reindexer interface {
	// Run rebuilds the entity index from the vault, regenerates every
	// generated index document, and optionally commits the result.
	Run(ctx context.Context) (*Result, error)
	// Close releases the entity index.
	Close() error
}
