package prefs

import (
	"context"
	"reflect"
	"testing"

	"github.com/matejv/surgiset/internal/db"
	"github.com/matejv/surgiset/internal/storage"
)

func newTestBackend(t *testing.T) storage.Backend {
	t.Helper()
	return storage.NewSQLiteBackend(db.NewTestDB(t))
}

func TestThemeDefaultsToLight(t *testing.T) {
	backend := newTestBackend(t)

	theme, err := OpenTheme(context.Background(), backend)
	if err != nil {
		t.Fatalf("OpenTheme: %v", err)
	}
	if theme.DarkMode() {
		t.Error("expected light mode by default")
	}
}

func TestThemeTogglePersists(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	theme, err := OpenTheme(ctx, backend)
	if err != nil {
		t.Fatalf("OpenTheme: %v", err)
	}

	theme.Toggle(ctx)
	if !theme.DarkMode() {
		t.Fatal("expected dark mode after toggle")
	}

	restored, err := OpenTheme(ctx, backend)
	if err != nil {
		t.Fatalf("OpenTheme after toggle: %v", err)
	}
	if !restored.DarkMode() {
		t.Error("expected dark mode restored from storage")
	}

	theme.Toggle(ctx)
	if theme.DarkMode() {
		t.Error("expected light mode after second toggle")
	}
}

func TestRecentSearchesOrderAndDedup(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	r, err := OpenRecentSearches(ctx, backend)
	if err != nil {
		t.Fatalf("OpenRecentSearches: %v", err)
	}

	r.Add(ctx, "scalpel")
	r.Add(ctx, "forceps")
	r.Add(ctx, "scalpel")

	want := []string{"scalpel", "forceps"}
	if got := r.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRecentSearchesCap(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	r, err := OpenRecentSearches(ctx, backend)
	if err != nil {
		t.Fatalf("OpenRecentSearches: %v", err)
	}

	for _, term := range []string{"a", "b", "c", "d", "e", "f"} {
		r.Add(ctx, term)
	}

	got := r.List()
	if len(got) != MaxRecentSearches {
		t.Fatalf("expected %d terms, got %d", MaxRecentSearches, len(got))
	}
	if got[0] != "f" {
		t.Errorf("expected most recent first, got %v", got)
	}
	for _, term := range got {
		if term == "a" {
			t.Errorf("expected oldest term evicted, got %v", got)
		}
	}
}

func TestRecentSearchesIgnoreBlank(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	r, _ := OpenRecentSearches(ctx, backend)
	r.Add(ctx, "   ")
	if got := r.List(); len(got) != 0 {
		t.Errorf("expected blank term ignored, got %v", got)
	}
}

func TestRecentSearchesPersistAndClear(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	r, _ := OpenRecentSearches(ctx, backend)
	r.Add(ctx, "osteotome")

	restored, err := OpenRecentSearches(ctx, backend)
	if err != nil {
		t.Fatalf("OpenRecentSearches: %v", err)
	}
	if got := restored.List(); len(got) != 1 || got[0] != "osteotome" {
		t.Errorf("expected persisted term restored, got %v", got)
	}

	restored.Clear(ctx)
	if got := restored.List(); len(got) != 0 {
		t.Errorf("expected empty list after clear, got %v", got)
	}

	again, _ := OpenRecentSearches(ctx, backend)
	if got := again.List(); len(got) != 0 {
		t.Errorf("expected cleared storage, got %v", got)
	}
}
