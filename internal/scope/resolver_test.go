// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

func TestResolveScope(t *testing.T) {
	tests := []struct {
		name string
		file string
		fm   *types.Frontmatter
		want string
	}{
		{name: "frontmatter wins", file: "townA/index.md", fm: &types.Frontmatter{Scope: "arc1"}, want: "arc1"},
		{name: "first directory segment", file: "townA/people/index.md", want: "townA"},
		{name: "single directory", file: "townB/index.md", fm: &types.Frontmatter{}, want: "townB"},
		{name: "vault root is wildcard", file: "index.md", want: types.WildcardScope},
		{name: "blank frontmatter scope ignored", file: "townC/x.md", fm: &types.Frontmatter{Scope: "  "}, want: "townC"},
		{name: "backslash paths", file: `townD\sub\x.md`, want: "townD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScope(tt.file, tt.fm))
		})
	}
}

func TestResolvePattern(t *testing.T) {
	assert.Equal(t, "townA", ResolvePattern(nil, "townA"))
	assert.Equal(t, "townA", ResolvePattern(&types.Frontmatter{}, "townA"))
	assert.Equal(t, "townA|townB", ResolvePattern(&types.Frontmatter{ScopePattern: "townA|townB"}, "townA"))
}

func TestResolveFilter(t *testing.T) {
	log := zap.NewNop()

	assert.Nil(t, ResolveFilter(nil, log))
	assert.Nil(t, ResolveFilter(&types.Frontmatter{}, log))
	assert.Nil(t, ResolveFilter(&types.Frontmatter{ScopeFilter: "([unclosed"}, log))

	re := ResolveFilter(&types.Frontmatter{ScopeFilter: "^townA/places/"}, log)
	require.NotNil(t, re)
	assert.True(t, re.MatchString("TownA/Places/inn.md"))
	assert.False(t, re.MatchString("townB/places/inn.md"))
}

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		match   []string
		reject  []string
	}{
		{pattern: "townA", match: []string{"townA", "TOWNA"}, reject: []string{"townAB", "xtownA"}},
		{pattern: "townA|townB", match: []string{"townA", "townB"}, reject: []string{"townC"}},
		{pattern: "townA, townB", match: []string{"townB"}, reject: []string{" townB"}},
		{pattern: "arc-*", match: []string{"arc-1", "arc-"}, reject: []string{"arc"}},
		{pattern: "*", match: []string{"anything", "*"}},
		{pattern: "a.b", match: []string{"a.b"}, reject: []string{"axb"}},
		{pattern: "", match: []string{""}, reject: []string{"townA"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := CompilePattern(tt.pattern)
			for _, m := range tt.match {
				assert.True(t, re.MatchString(m), "%q should match %q", tt.pattern, m)
			}
			for _, r := range tt.reject {
				assert.False(t, re.MatchString(r), "%q should not match %q", tt.pattern, r)
			}
		})
	}
}

func TestScopes(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Scopes("a| b ,c"))
	assert.Nil(t, Scopes(""))
}

func TestNew_ActiveAlwaysInPattern(t *testing.T) {
	ds := New("townA/index.md", &types.Frontmatter{ScopePattern: "townB"}, nil)

	assert.Equal(t, "townA", ds.Active)
	assert.Equal(t, "townB|townA", ds.Pattern)
	assert.True(t, ds.Regex.MatchString(ds.Active))
	assert.True(t, ds.Regex.MatchString("townB"))
	assert.Nil(t, ds.Filter)
}

func TestNew_Defaults(t *testing.T) {
	ds := New("townA/index.md", nil, zap.NewNop())

	assert.Equal(t, "townA", ds.Active)
	assert.Equal(t, "townA", ds.Pattern)
	assert.True(t, ds.Includes("anywhere.md"))
}
