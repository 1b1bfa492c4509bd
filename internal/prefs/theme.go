// Package prefs holds the small persisted user preferences: the dark-mode
// flag and the recent search terms. Both save through the same storage
// backend as the inventory, under their own namespaces, and failures to
// persist are logged and otherwise ignored.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/matejv/surgiset/internal/storage"
)

// Theme is the persisted theme preference.
type Theme struct {
	mu      sync.Mutex
	dark    bool
	backend storage.Backend
}

type themeDoc struct {
	IsDarkMode bool `json:"isDarkMode"`
}

// OpenTheme restores the theme preference; absent state means light mode.
func OpenTheme(ctx context.Context, backend storage.Backend) (*Theme, error) {
	data, err := backend.Load(ctx, storage.ThemeNamespace)
	if err != nil {
		return nil, fmt.Errorf("loading theme preference: %w", err)
	}

	t := &Theme{backend: backend}
	if data != nil {
		var doc themeDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding theme preference: %w", err)
		}
		t.dark = doc.IsDarkMode
	}
	return t, nil
}

// DarkMode reports whether dark mode is enabled.
func (t *Theme) DarkMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// Toggle flips the dark-mode flag and persists it. Persistence failures are
// logged; the in-memory value stands either way.
func (t *Theme) Toggle(ctx context.Context) {
	t.mu.Lock()
	t.dark = !t.dark
	doc := themeDoc{IsDarkMode: t.dark}
	t.mu.Unlock()

	data, err := json.Marshal(doc)
	if err != nil {
		slog.Error("encoding theme preference", "error", err)
		return
	}
	if err := t.backend.Save(ctx, storage.ThemeNamespace, data); err != nil {
		slog.Error("persisting theme preference", "error", err)
	}
}
