// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "regexp"

// Frontmatter is the subset of a document's YAML header that drives index
// regeneration and entity indexing.
type Frontmatter struct {
	GeneratedIndex bool   `yaml:"generatedIndex"`
	Scope          string `yaml:"scope"`
	ScopePattern   string `yaml:"scopePattern"`
	ScopeFilter    string `yaml:"scopeFilter"`

	// Entity fields; present only on entity documents.
	ID      string                `yaml:"id"`
	Type    string                `yaml:"type"`
	Name    string                `yaml:"name"`
	Subtype string                `yaml:"subtype"`
	Icon    string                `yaml:"icon"`
	Level   int                   `yaml:"level"`
	Area    string                `yaml:"area"`
	Date    string                `yaml:"date"`
	Links   []string              `yaml:"links"`
	State   map[string]ScopeState `yaml:"state"`
}

// DataScope is the effective data window of one generated document. It is
// built per file and discarded after the file is regenerated.
type DataScope struct {
	Active  string         // Primary scope id of the document
	Pattern string         // Scope pattern the document aggregates
	Regex   *regexp.Regexp // Pattern compiled for scope matching
	Filter  *regexp.Regexp // Optional source-path filter; nil means no filtering
}

// Includes reports whether path passes the scope's source-path filter.
func (s DataScope) Includes(path string) bool {
	return s.Filter == nil || s.Filter.MatchString(path)
}
