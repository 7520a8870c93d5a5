// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package reindex implements the run orchestrator. A run discovers the
// generated index documents, groups them by scope pattern, precomputes the
// relationship cache once per pattern, and regenerates every region of every
// document before clearing the cache again.
package reindex

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/internal/cards"
	"github.com/petar-djukic/go-reindex/internal/icons"
	"github.com/petar-djukic/go-reindex/internal/scope"
	"github.com/petar-djukic/go-reindex/internal/sections"
	"github.com/petar-djukic/go-reindex/internal/sentinel"
	"github.com/petar-djukic/go-reindex/pkg/types"
)

// YieldFunc is called between units of work. A non-nil error aborts the run.
type YieldFunc func(ctx context.Context) error

// DefaultYield lets other goroutines run, then reports cancellation.
func DefaultYield(ctx context.Context) error {
	runtime.Gosched()
	return ctx.Err()
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Store  types.DocumentStore
	Cache  types.RelationshipCache
	Index  types.EntityIndex
	Icons  types.IconSet // Defaults to icons.Default().
	Log    *zap.Logger   // Defaults to a no-op logger.
	Yield  YieldFunc     // Defaults to DefaultYield.
	DryRun bool          // Compute changes and diffs without writing.
}

// FileResult is the outcome for one generated index document.
type FileResult struct {
	Path    string
	Scope   string
	Pattern string
	Changed bool
	Regions []sentinel.Kind     // Regions regenerated, in processing order
	Skipped []sentinel.TagBlock // Tag blocks left as written
	Diff    string              // Set on changed files in dry-run mode
}

// Result holds the outcome of a Runner.Run invocation.
type Result struct {
	Files  []FileResult
	Groups int
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

// Runner orchestrates a regeneration run.
type Runner struct {
	deps    Deps
	log     *zap.Logger
	gen     *sections.Generator
	regions []region
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Icons == nil {
		deps.Icons = icons.Default()
	}
	if deps.Yield == nil {
		deps.Yield = DefaultYield
	}
	f := cards.NewFormatter(deps.Cache, deps.Index, deps.Icons, deps.Log)
	return &Runner{
		deps:    deps,
		log:     deps.Log,
		gen:     sections.New(f),
		regions: defaultRegions(),
	}
}

// target is one document and the data scope it was grouped under.
type target struct {
	path string
	ds   types.DataScope
}

// group is the set of documents sharing one scope pattern.
type group struct {
	pattern string
	targets []target
}

// Run regenerates every generated index document. The cache is cleared
// before the first precompute and again when the run ends, whether it
// succeeds, fails, or is cancelled. Documents already written stay written.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	files, err := r.deps.Store.ListGeneratedIndexFiles(ctx)
	if err != nil {
		return result, fmt.Errorf("listing generated index files: %w", err)
	}
	if len(files) == 0 {
		r.log.Info("no generated index files")
		return result, nil
	}

	groups, err := r.group(files)
	if err != nil {
		return result, err
	}
	result.Groups = len(groups)

	r.deps.Cache.Clear()
	defer func() {
		r.deps.Cache.Clear()
		r.log.Debug("cache cleared")
	}()

	for _, g := range groups {
		if err := r.deps.Cache.Precompute(g.pattern); err != nil {
			return result, fmt.Errorf("precomputing scope pattern %q: %w", g.pattern, err)
		}
		if err := r.deps.Yield(ctx); err != nil {
			return result, err
		}

		for _, t := range g.targets {
			fr, err := r.regenerate(t)
			if err != nil {
				return result, err
			}
			result.Files = append(result.Files, fr)
			if err := r.deps.Yield(ctx); err != nil {
				return result, err
			}
		}
	}

	r.log.Info("run complete",
		zap.Int("files", len(result.Files)),
		zap.Int("changed", len(result.Changed())),
		zap.Int("groups", result.Groups),
		zap.Bool("dryRun", r.deps.DryRun))
	return result, nil
}

// group resolves each document's data scope and groups the documents by
// effective pattern in first-seen order.
func (r *Runner) group(files []string) ([]group, error) {
	var groups []group
	byPattern := make(map[string]int)
	for _, path := range files {
		fm, err := r.deps.Store.Frontmatter(path)
		if err != nil {
			return nil, fmt.Errorf("reading frontmatter of %s: %w", path, err)
		}
		ds := scope.New(path, fm, r.log)
		i, ok := byPattern[ds.Pattern]
		if !ok {
			i = len(groups)
			byPattern[ds.Pattern] = i
			groups = append(groups, group{pattern: ds.Pattern})
		}
		groups[i].targets = append(groups[i].targets, target{path: path, ds: ds})
	}
	return groups, nil
}

// regenerate rewrites every region of one document in memory and stores
// the result with a single write when the text changed.
func (r *Runner) regenerate(t target) (FileResult, error) {
	fr := FileResult{Path: t.path, Scope: t.ds.Active, Pattern: t.ds.Pattern}

	before, err := r.deps.Store.ReadFile(t.path)
	if err != nil {
		return fr, fmt.Errorf("reading %s: %w", t.path, err)
	}

	after, kinds, skipped := r.apply(before, t.ds)
	fr.Regions = kinds
	fr.Skipped = skipped
	for _, b := range skipped {
		r.log.Warn("tag connection left unchanged",
			zap.String("file", t.path),
			zap.String("type", b.RawType),
			zap.String("scope", b.Scope))
	}

	if after == before {
		r.log.Debug("index unchanged", zap.String("file", t.path))
		return fr, nil
	}
	fr.Changed = true

	if r.deps.DryRun {
		fr.Diff = Diff(t.path, before, after)
		r.log.Info("index would change", zap.String("file", t.path))
		return fr, nil
	}
	if err := r.deps.Store.WriteFile(t.path, after); err != nil {
		return fr, fmt.Errorf("writing %s: %w", t.path, err)
	}
	r.log.Info("regenerated index",
		zap.String("file", t.path),
		zap.String("scope", t.ds.Active),
		zap.Int("regions", len(kinds)))
	return fr, nil
}

// apply runs every region descriptor over text, then the tag blocks.
func (r *Runner) apply(text string, ds types.DataScope) (string, []sentinel.Kind, []sentinel.TagBlock) {
	var kinds []sentinel.Kind
	for _, reg := range r.regions {
		var ok bool
		text, ok = reg.Replace(text, func() string { return reg.generate(r.gen, ds) })
		if ok {
			kinds = append(kinds, reg.Kind)
		}
	}

	text, res := sentinel.ReplaceTagConnections(text, func(b sentinel.TagBlock) (string, bool) {
		blockScope := b.Scope
		if blockScope == "" {
			blockScope = ds.Active
		}
		return r.gen.TagConnection(ds, blockScope, b.Type)
	})
	if len(res.Replaced) > 0 {
		kinds = append(kinds, sentinel.KindTagConnection)
	}
	return text, kinds, res.Skipped
}
