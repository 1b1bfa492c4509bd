package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend persists each namespace as a JSON file inside a directory.
// It is the fallback used where no SQLite database is wanted, e.g. when the
// data directory is synced by an external tool that prefers plain files.
type FileBackend struct {
	dir string
}

// OpenFileBackend creates the directory if needed and returns a backend
// writing into it.
func OpenFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// path maps a namespace to its file. Namespaces are fixed constants, but
// sanitize separators anyway so a bad one cannot escape the directory.
func (b *FileBackend) path(namespace string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(namespace)
	return filepath.Join(b.dir, name+".json")
}

// Load returns the document saved under namespace, or (nil, nil) if absent.
func (b *FileBackend) Load(_ context.Context, namespace string) ([]byte, error) {
	data, err := os.ReadFile(b.path(namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %q: %w", namespace, err)
	}
	return data, nil
}

// Save replaces the document saved under namespace. The write goes to a
// temporary file first and is moved into place, so readers never observe a
// partially written document.
func (b *FileBackend) Save(_ context.Context, namespace string, data []byte) error {
	path := b.path(namespace)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing document %q: %w", namespace, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("saving document %q: %w", namespace, err)
	}
	return nil
}

// Clear removes the document saved under namespace.
func (b *FileBackend) Clear(_ context.Context, namespace string) error {
	err := os.Remove(b.path(namespace))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing document %q: %w", namespace, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (b *FileBackend) Close() error {
	return nil
}
