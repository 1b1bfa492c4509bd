package storage

import (
	"fmt"
	"log/slog"
)

// Backend kinds accepted by Open.
const (
	KindAuto   = "auto"
	KindSQLite = "sqlite"
	KindFile   = "file"
)

// Open selects and opens a backend. "sqlite" and "file" force a backend;
// "auto" prefers SQLite and falls back to plain files if the database cannot
// be opened (e.g. a read-only or otherwise unusable path).
func Open(kind, dbPath, dataDir string) (Backend, error) {
	switch kind {
	case KindSQLite:
		return OpenSQLite(dbPath)
	case KindFile:
		return OpenFileBackend(dataDir)
	case KindAuto, "":
		backend, err := OpenSQLite(dbPath)
		if err == nil {
			return backend, nil
		}
		slog.Warn("sqlite backend unavailable, falling back to file storage",
			"db", dbPath, "dir", dataDir, "error", err)
		return OpenFileBackend(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
