// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package campaign

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	id        TEXT PRIMARY KEY,
	type      TEXT NOT NULL,
	name      TEXT NOT NULL,
	file_path TEXT NOT NULL,
	scope     TEXT NOT NULL,
	doc       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type);
CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name COLLATE NOCASE);
`

// ErrEntityNotFound is returned by Get when no entity has the id.
var ErrEntityNotFound = errors.New("entity not found in index")

// Index is the SQLite-backed entity index. It is a rebuildable cache of the
// vault's entity documents.
type Index struct {
	db  *sql.DB
	log *zap.Logger
}

var _ types.EntityIndex = (*Index)(nil)

// Open opens or creates the index database at dbPath. An empty path opens a
// private in-memory database.
func Open(dbPath string, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dsn := "file::memory:"
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
		dsn = dbPath
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing index schema: %w", err)
	}
	return &Index{db: db, log: log}, nil
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// Reset removes every entity.
func (x *Index) Reset(ctx context.Context) error {
	if _, err := x.db.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	return nil
}

// Put inserts or replaces entities in one transaction.
func (x *Index) Put(ctx context.Context, entities ...*types.Entity) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO entities (id, type, name, file_path, scope, doc) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entities {
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding entity %s: %w", e.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, string(e.Type), e.Name, e.FilePath, e.Scope, string(doc)); err != nil {
			return fmt.Errorf("inserting entity %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// Get returns the entity with exactly id.
func (x *Index) Get(ctx context.Context, id string) (*types.Entity, error) {
	var doc string
	err := x.db.QueryRowContext(ctx, `SELECT doc FROM entities WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying entity %s: %w", id, err)
	}
	return decode(doc)
}

// Resolve looks an entity up by reference: exact id first, then name
// (case-insensitive), then the last path segment of the id.
func (x *Index) Resolve(ref string) (*types.Entity, bool) {
	ref = NormalizeRef(ref)
	if ref == "" {
		return nil, false
	}
	queries := []string{
		`SELECT doc FROM entities WHERE id = ?1`,
		`SELECT doc FROM entities WHERE name = ?1 COLLATE NOCASE ORDER BY id LIMIT 1`,
		`SELECT doc FROM entities WHERE id LIKE '%/' || ?1 ORDER BY id LIMIT 1`,
	}
	for _, q := range queries {
		var doc string
		err := x.db.QueryRow(q, ref).Scan(&doc)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			x.log.Debug("entity lookup failed", zap.String("ref", ref), zap.Error(err))
			return nil, false
		}
		e, err := decode(doc)
		if err != nil {
			x.log.Debug("entity decode failed", zap.String("ref", ref), zap.Error(err))
			return nil, false
		}
		return e, true
	}
	return nil, false
}

// ResolveType maps a raw type token to a canonical type.
func (x *Index) ResolveType(token string) (types.EntityType, bool) {
	t, ok := ParseType(token)
	if !ok {
		x.log.Debug("unknown entity type", zap.String("token", token))
	}
	return t, ok
}

// All returns every entity of type t ordered by name, then id.
func (x *Index) All(t types.EntityType) ([]*types.Entity, error) {
	rows, err := x.db.Query(`SELECT doc FROM entities WHERE type = ? ORDER BY name COLLATE NOCASE, id`, string(t))
	if err != nil {
		return nil, fmt.Errorf("querying %s entities: %w", t, err)
	}
	defer rows.Close()

	var out []*types.Entity
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning %s entity: %w", t, err)
		}
		e, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of indexed entities.
func (x *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := x.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	return n, nil
}

func decode(doc string) (*types.Entity, error) {
	var e types.Entity
	if err := json.Unmarshal([]byte(doc), &e); err != nil {
		return nil, fmt.Errorf("decoding entity: %w", err)
	}
	return &e, nil
}
