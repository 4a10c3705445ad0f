package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"taskdeck/internal/model"
)

// ErrVersionConflict is returned by SQLiteStore.Save when the stored
// document changed since it was loaded. The caller should reload and
// reapply its mutation.
var ErrVersionConflict = errors.New("document modified since last load")

// SQLiteStore implements DocumentStore by keeping the serialized
// document in a single row of a local SQLite database. Unlike the flat
// file backend it carries a version column, so a concurrent writer is
// detected instead of silently overwritten.
type SQLiteStore struct {
	db *sqlx.DB

	// version of the document as of the last Load.
	version int64
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Load reads the stored document and remembers its version for the
// optimistic check in Save.
func (s *SQLiteStore) Load(ctx context.Context) (*model.Document, error) {
	var row struct {
		Body    string `db:"body"`
		Version int64  `db:"version"`
	}
	err := s.db.GetContext(ctx, &row,
		"SELECT body, version FROM document WHERE id = 1")
	if err == sql.ErrNoRows {
		s.version = 0
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	doc := model.NewDocument()
	if err := json.Unmarshal([]byte(row.Body), doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	normalize(doc)
	s.version = row.Version
	return doc, nil
}

// Save rewrites the document if it has not changed since Load, bumping
// the version. A concurrent modification yields ErrVersionConflict.
func (s *SQLiteStore) Save(ctx context.Context, doc *model.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	now := time.Now().UTC()

	if s.version == 0 {
		result, err := s.db.ExecContext(ctx, `
			INSERT INTO document (id, body, version, updated_at)
			VALUES (1, ?, 1, ?)
			ON CONFLICT (id) DO NOTHING`,
			string(raw), now,
		)
		if err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
		// A concurrent writer inserted first.
		if rows, _ := result.RowsAffected(); rows == 0 {
			return ErrVersionConflict
		}
		s.version = 1
		return nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE document
		SET body = ?, version = version + 1, updated_at = ?
		WHERE id = 1 AND version = ?`,
		string(raw), now, s.version,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrVersionConflict
	}
	s.version++
	return nil
}
