// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package reindex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/internal/campaign"
	gitpkg "github.com/petar-djukic/go-reindex/internal/git"
	"github.com/petar-djukic/go-reindex/internal/icons"
	internalreindex "github.com/petar-djukic/go-reindex/internal/reindex"
	"github.com/petar-djukic/go-reindex/internal/vault"
)

// New validates the config, opens the vault and the entity index, and
// returns a ready-to-use Reindexer. Indexing happens in Run.
func New(cfg Config) (Reindexer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)

	v, err := vault.Open(cfg.VaultDir, cfg.Logger)
	if err != nil {
		return nil, err
	}
	idx, err := campaign.Open(cfg.IndexDB, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &reindexer{
		cfg:   cfg,
		vault: v,
		index: idx,
		icons: icons.Default().WithOverrides(cfg.Icons),
		log:   cfg.Logger,
	}, nil
}

// Undo reverts the last regeneration commit in the repository holding
// vaultDir, keeping the regenerated text in the working tree.
func Undo(vaultDir string) error {
	repo, err := gitpkg.Open(gitpkg.Config{VaultDir: vaultDir})
	if err != nil {
		return err
	}
	return repo.Undo()
}

// reindexer adapts internal/reindex.Runner to the public Reindexer interface.
type reindexer struct {
	cfg   Config
	vault *vault.Vault
	index *campaign.Index
	icons *icons.Set
	log   *zap.Logger
}

func (r *reindexer) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	n, err := r.index.Rebuild(ctx, r.vault)
	if err != nil {
		return result, fmt.Errorf("indexing vault: %w", err)
	}
	result.Entities = n

	repo := r.openRepo()
	if repo != nil {
		files, err := r.vault.ListGeneratedIndexFiles(ctx)
		if err != nil {
			return result, err
		}
		if err := repo.HandleDirty(files); err != nil {
			return result, fmt.Errorf("handling dirty index files: %w", err)
		}
	}

	runner := internalreindex.NewRunner(internalreindex.Deps{
		Store:  r.vault,
		Cache:  campaign.NewCache(r.index, r.log),
		Index:  r.index,
		Icons:  r.icons,
		Log:    r.log,
		DryRun: r.cfg.DryRun,
	})
	ir, err := runner.Run(ctx)
	if ir != nil {
		result.Groups = ir.Groups
		for _, f := range ir.Files {
			result.Files = append(result.Files, convert(f))
		}
	}
	if err != nil {
		return result, err
	}

	if repo != nil {
		changed := result.Changed()
		if err := repo.Commit(changed); err != nil {
			return result, fmt.Errorf("committing regenerated files: %w", err)
		}
		result.Committed = len(changed) > 0
	}
	return result, nil
}

// openRepo returns the vault's repository when committing is requested, or
// nil when it is not or the vault is not under git.
func (r *reindexer) openRepo() *gitpkg.Repo {
	if !r.cfg.Commit || r.cfg.DryRun {
		return nil
	}
	repo, err := gitpkg.Open(gitpkg.Config{
		VaultDir:    r.cfg.VaultDir,
		AutoCommit:  true,
		DirtyCommit: r.cfg.DirtyCommit,
	})
	if errors.Is(err, gitpkg.ErrNoGit) {
		r.log.Warn("commit requested but vault is not in a git repository",
			zap.String("vault", r.cfg.VaultDir))
		return nil
	}
	if err != nil {
		r.log.Warn("opening git repository failed", zap.Error(err))
		return nil
	}
	return repo
}

func (r *reindexer) Close() error {
	return r.index.Close()
}

func convert(f internalreindex.FileResult) FileResult {
	out := FileResult{
		Path:    f.Path,
		Scope:   f.Scope,
		Pattern: f.Pattern,
		Changed: f.Changed,
		Diff:    f.Diff,
	}
	for _, k := range f.Regions {
		out.Regions = append(out.Regions, string(k))
	}
	for _, b := range f.Skipped {
		out.Skipped = append(out.Skipped, b.RawType)
	}
	return out
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.VaultDir == "" {
		return fmt.Errorf("VaultDir is required")
	}
	if info, err := os.Stat(cfg.VaultDir); err != nil || !info.IsDir() {
		return fmt.Errorf("VaultDir %q does not exist or is not a directory", cfg.VaultDir)
	}
	if cfg.IndexDB != "" {
		if info, err := os.Stat(filepath.Dir(cfg.IndexDB)); err != nil || !info.IsDir() {
			return fmt.Errorf("IndexDB directory %q does not exist", filepath.Dir(cfg.IndexDB))
		}
	}
	for key := range cfg.Icons {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "fallback" {
			continue
		}
		kind, _, ok := strings.Cut(key, ".")
		if !ok || (kind != "type" && kind != "status" && kind != "iff") {
			return fmt.Errorf("icon override %q: want fallback or a type/status/iff prefix", key)
		}
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}
