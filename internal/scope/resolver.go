// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scope derives the data window of a generated document from its
// frontmatter and vault location.
package scope

import (
	"path"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// ResolveScope returns the document's declared scope, or the first directory
// segment of its vault-relative path. Documents at the vault root belong to
// the wildcard scope.
func ResolveScope(file string, fm *types.Frontmatter) string {
	if fm != nil {
		if s := strings.TrimSpace(fm.Scope); s != "" {
			return s
		}
	}
	dir := path.Dir(strings.TrimPrefix(filepathToSlash(file), "/"))
	if dir == "." || dir == "" {
		return types.WildcardScope
	}
	if i := strings.IndexByte(dir, '/'); i >= 0 {
		return dir[:i]
	}
	return dir
}

// ResolvePattern returns the declared scope pattern, or scopeID when the
// document aggregates only its own scope.
func ResolvePattern(fm *types.Frontmatter, scopeID string) string {
	if fm != nil {
		if p := strings.TrimSpace(fm.ScopePattern); p != "" {
			return p
		}
	}
	return scopeID
}

// ResolveFilter compiles the declared source-path filter. It returns nil for
// a missing or invalid expression; invalid ones are logged.
func ResolveFilter(fm *types.Frontmatter, log *zap.Logger) *regexp.Regexp {
	if fm == nil {
		return nil
	}
	expr := strings.TrimSpace(fm.ScopeFilter)
	if expr == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		log.Warn("ignoring invalid scope filter",
			zap.String("filter", expr), zap.Error(err))
		return nil
	}
	return re
}

// CompilePattern turns a scope pattern into an anchored, case-insensitive
// expression. Alternatives are separated by "|" or ","; "*" matches any run
// of characters.
func CompilePattern(pattern string) *regexp.Regexp {
	var alts []string
	for _, part := range strings.FieldsFunc(pattern, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pieces := strings.Split(part, "*")
		for i, p := range pieces {
			pieces[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(pieces, ".*"))
	}
	if len(alts) == 0 {
		// An empty pattern matches nothing but the empty scope.
		return regexp.MustCompile(`^$`)
	}
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(alts, "|") + `)$`)
}

// Scopes splits a pattern into its alternatives as written.
func Scopes(pattern string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(pattern, func(r rune) bool { return r == '|' || r == ',' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// New builds the DataScope for one document. The active scope is always
// covered by the compiled pattern: a declared pattern that does not match
// it is widened to include it.
func New(file string, fm *types.Frontmatter, log *zap.Logger) types.DataScope {
	if log == nil {
		log = zap.NewNop()
	}
	active := ResolveScope(file, fm)
	pattern := ResolvePattern(fm, active)
	re := CompilePattern(pattern)
	if !re.MatchString(active) {
		log.Debug("scope pattern does not cover active scope; widening",
			zap.String("file", file),
			zap.String("scope", active),
			zap.String("pattern", pattern))
		pattern = pattern + "|" + active
		re = CompilePattern(pattern)
	}
	return types.DataScope{
		Active:  active,
		Pattern: pattern,
		Regex:   re,
		Filter:  ResolveFilter(fm, log),
	}
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
