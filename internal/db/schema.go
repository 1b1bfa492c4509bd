package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Every store persists its whole state
// as a single JSON document keyed by namespace, so one key-value table is
// all the database holds.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    namespace  TEXT PRIMARY KEY,
    body       TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
