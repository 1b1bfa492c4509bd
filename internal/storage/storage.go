// Package storage abstracts the durable key-value persistence used by the
// stores. Each store serializes its full state as one JSON document and
// saves it under a namespace; the backend in use is picked at startup.
package storage

import "context"

// Store namespaces. Kept identical to the persisted document keys so that
// existing data survives backend version upgrades.
const (
	InventoryNamespace = "instrument-storage"
	ThemeNamespace     = "theme-storage"
	SearchesNamespace  = "recent_searches"
)

// Backend loads and saves serialized store state by namespace.
type Backend interface {
	// Load returns the document saved under namespace, or (nil, nil) if
	// nothing has been saved yet.
	Load(ctx context.Context, namespace string) ([]byte, error)

	// Save replaces the document saved under namespace.
	Save(ctx context.Context, namespace string, data []byte) error

	// Clear removes the document saved under namespace, if any.
	Clear(ctx context.Context, namespace string) error

	// Close releases backend resources.
	Close() error
}
