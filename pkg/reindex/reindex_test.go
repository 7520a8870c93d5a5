// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package reindex

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexDoc = `---
generatedIndex: true
---
# Town A

<!-- NPCS BEGIN -->
<!-- NPCS END -->

<!-- tagConnection:begin scope="townA" type="location" -->
<!-- tagConnection:end -->
`

// writeVault creates a small campaign vault and returns its root.
func writeVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"townA/index.md": indexDoc,
		"townA/npcs/bob.md": `---
type: npc
name: Bob
state:
  townA:
    iff: ally
    notes: Runs the ferry
---
`,
		"townA/places/inn.md": `---
type: place
name: Inn
---
`,
		"townB/npcs/eve.md": `---
type: npc
name: Eve
---
`,
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing vault", Config{}},
		{"vault does not exist", Config{VaultDir: filepath.Join(t.TempDir(), "nope")}},
		{"index dir does not exist", Config{VaultDir: t.TempDir(), IndexDB: filepath.Join(t.TempDir(), "x", "index.db")}},
		{"bad icon key", Config{VaultDir: t.TempDir(), Icons: map[string]string{"colour.npc": "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRun_RegeneratesVault(t *testing.T) {
	root := writeVault(t)
	r, err := New(Config{VaultDir: root, IndexDB: filepath.Join(t.TempDir(), "index.db")})
	require.NoError(t, err)
	defer r.Close()

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Entities)
	assert.Equal(t, 1, res.Groups)
	assert.Equal(t, []string{"townA/index.md"}, res.Changed())
	require.Len(t, res.Files, 1)
	assert.Equal(t, []string{"NPCS", "tagConnection"}, res.Files[0].Regions)

	out := readFile(t, root, "townA/index.md")
	assert.Contains(t, out, "### Allies\n")
	assert.Contains(t, out, ">Bob</a>")
	assert.Contains(t, out, "Runs the ferry")
	assert.NotContains(t, out, "Eve", "other scopes stay out")
	assert.Contains(t, out, "| place for townA |\n| --- |\n| [[townA/places/inn\\|Inn]] |\n^place-items-townA\n")
	assert.True(t, strings.HasPrefix(out, "---\ngeneratedIndex: true\n---\n# Town A\n\n<!-- NPCS BEGIN -->"))

	again, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.Changed())
	assert.Equal(t, out, readFile(t, root, "townA/index.md"))
}

func TestRun_DryRunLeavesFiles(t *testing.T) {
	root := writeVault(t)
	r, err := New(Config{VaultDir: root, DryRun: true, Icons: map[string]string{"IFF.Friendly": "F"}})
	require.NoError(t, err)
	defer r.Close()

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, indexDoc, readFile(t, root, "townA/index.md"))
	require.Len(t, res.Files, 1)
	assert.True(t, res.Files[0].Changed)
	assert.Contains(t, res.Files[0].Diff, "+### Allies")
	assert.False(t, res.Committed)
}

func TestRun_CommitsAndUndoes(t *testing.T) {
	root := writeVault(t)
	repo, err := gogit.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("campaign notes", &gogit.CommitOptions{
		Author: &object.Signature{Name: "GM", Email: "gm@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	r, err := New(Config{VaultDir: root, Commit: true})
	require.NoError(t, err)
	defer r.Close()

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Committed)

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Contains(t, commit.Message, "- townA/index.md")

	require.NoError(t, Undo(root))
	head, err = repo.Head()
	require.NoError(t, err)
	commit, err = repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "campaign notes", commit.Message)
}

func TestRun_CommitWithoutGitStillRegenerates(t *testing.T) {
	root := writeVault(t)
	r, err := New(Config{VaultDir: root, Commit: true})
	require.NoError(t, err)
	defer r.Close()

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Equal(t, []string{"townA/index.md"}, res.Changed())
}
