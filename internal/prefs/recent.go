package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/matejv/surgiset/internal/storage"
)

// MaxRecentSearches caps the recent search terms list.
const MaxRecentSearches = 5

// RecentSearches is the persisted list of recent catalog search terms,
// de-duplicated and ordered most-recent-first.
type RecentSearches struct {
	mu      sync.Mutex
	terms   []string
	backend storage.Backend
}

// OpenRecentSearches restores the persisted list; absent state means empty.
func OpenRecentSearches(ctx context.Context, backend storage.Backend) (*RecentSearches, error) {
	data, err := backend.Load(ctx, storage.SearchesNamespace)
	if err != nil {
		return nil, fmt.Errorf("loading recent searches: %w", err)
	}

	r := &RecentSearches{backend: backend}
	if data != nil {
		if err := json.Unmarshal(data, &r.terms); err != nil {
			return nil, fmt.Errorf("decoding recent searches: %w", err)
		}
	}
	return r, nil
}

// List returns the terms, most recent first.
func (r *RecentSearches) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.terms...)
}

// Add records a search term at the front of the list, removing an earlier
// occurrence of the same term and trimming the list to MaxRecentSearches.
// Blank terms are ignored.
func (r *RecentSearches) Add(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	r.mu.Lock()
	next := make([]string, 0, MaxRecentSearches)
	next = append(next, term)
	for _, t := range r.terms {
		if t != term && len(next) < MaxRecentSearches {
			next = append(next, t)
		}
	}
	r.terms = next
	data, err := json.Marshal(next)
	r.mu.Unlock()

	if err != nil {
		slog.Error("encoding recent searches", "error", err)
		return
	}
	if err := r.backend.Save(ctx, storage.SearchesNamespace, data); err != nil {
		slog.Error("persisting recent searches", "error", err)
	}
}

// Clear empties the list and removes the persisted document.
func (r *RecentSearches) Clear(ctx context.Context) {
	r.mu.Lock()
	r.terms = nil
	r.mu.Unlock()

	if err := r.backend.Clear(ctx, storage.SearchesNamespace); err != nil {
		slog.Error("clearing recent searches", "error", err)
	}
}
