// Package sqlite provides an embedded implementation of storage.Gateway on
// top of SQLite, used for local development and tests where running a
// MongoDB server is not worth it.
//
// HOW DOCUMENTS ARE STORED:
// ─────────────────────────
// Every record is kept as one JSON document in a single documents table,
// tagged with its EntityKind. SQLite's JSON functions reach into the body,
// so a lookup by "basicInformation.email" becomes
//
//	json_extract(body, '$.basicInformation.email') = ?
//
// and a unique expression index on that same expression enforces email
// uniqueness for resume details, just like the MongoDB unique index.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql;
// its Error type is also how a unique-index violation is recognised.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-profiles-api/internal/config"
	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/types"
)

// SQLite is the concrete embedded storage.Gateway.
// A *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Gateway = (*SQLite)(nil)

// New opens the database at cfg.Storage.Path and creates the schema if it
// does not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.Storage.Path)
}

// Open opens (or creates) the database file at path.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE ... IF NOT EXISTS is idempotent, safe to run on every startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT    NOT NULL,
			body TEXT    NOT NULL
		);
		CREATE INDEX IF NOT EXISTS documents_kind ON documents (kind);
		CREATE UNIQUE INDEX IF NOT EXISTS documents_resume_email
			ON documents (json_extract(body, '$.basicInformation.email'))
			WHERE kind = 'userresumedetails';
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Create stores record as a JSON document and returns its row id.
func (s *SQLite) Create(ctx context.Context, kind types.EntityKind, record any) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("Create %s: encode: %w", kind, err)
	}

	stmt, err := s.Db.PrepareContext(ctx, "INSERT INTO documents (kind, body) VALUES (?, ?)")
	if err != nil {
		return "", fmt.Errorf("Create %s: prepare: %w", kind, err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, string(kind), string(body))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", storage.ErrConflict
		}
		return "", fmt.Errorf("Create %s: exec: %w", kind, err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("Create %s: last insert id: %w", kind, err)
	}

	return strconv.FormatInt(lastID, 10), nil
}

// FindOne decodes the first document of kind whose field equals value.
func (s *SQLite) FindOne(ctx context.Context, kind types.EntityKind, field string, value any, out any) (string, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, body FROM documents WHERE kind = ? AND json_extract(body, ?) = ? ORDER BY id LIMIT 1",
	)
	if err != nil {
		return "", fmt.Errorf("FindOne %s: prepare: %w", kind, err)
	}
	defer stmt.Close()

	var (
		id   int64
		body string
	)
	err = stmt.QueryRowContext(ctx, string(kind), "$."+field, value).Scan(&id, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("FindOne %s: scan: %w", kind, err)
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return "", fmt.Errorf("FindOne %s: decode: %w", kind, err)
	}

	return strconv.FormatInt(id, 10), nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close(context.Context) error {
	return s.Db.Close()
}
