package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matejv/surgiset/internal/db"
)

// SQLiteBackend persists documents in a single-table SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path and
// ensures the schema exists.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, err
	}
	return &SQLiteBackend{db: database}, nil
}

// NewSQLiteBackend wraps an already-open database. The caller remains
// responsible for the schema.
func NewSQLiteBackend(database *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: database}
}

// Load returns the document saved under namespace, or (nil, nil) if absent.
func (b *SQLiteBackend) Load(ctx context.Context, namespace string) ([]byte, error) {
	var body []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE namespace = ?`, namespace,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %q: %w", namespace, err)
	}
	return body, nil
}

// Save replaces the document saved under namespace.
func (b *SQLiteBackend) Save(ctx context.Context, namespace string, data []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO documents (namespace, body) VALUES (?, ?)
		 ON CONFLICT (namespace) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		namespace, data,
	)
	if err != nil {
		return fmt.Errorf("saving document %q: %w", namespace, err)
	}
	return nil
}

// Clear removes the document saved under namespace.
func (b *SQLiteBackend) Clear(ctx context.Context, namespace string) error {
	_, err := b.db.ExecContext(ctx,
		`DELETE FROM documents WHERE namespace = ?`, namespace,
	)
	if err != nil {
		return fmt.Errorf("clearing document %q: %w", namespace, err)
	}
	return nil
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
