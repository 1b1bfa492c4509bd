package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func testBackends(t *testing.T) map[string]Backend {
	t.Helper()

	sqlite, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("opening sqlite backend: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	file, err := OpenFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("opening file backend: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return map[string]Backend{"sqlite": sqlite, "file": file}
}

func TestLoadAbsentReturnsNil(t *testing.T) {
	ctx := context.Background()
	for name, backend := range testBackends(t) {
		data, err := backend.Load(ctx, InventoryNamespace)
		if err != nil {
			t.Errorf("%s: Load: %v", name, err)
		}
		if data != nil {
			t.Errorf("%s: expected nil for absent namespace, got %q", name, data)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`{"inventory":[],"sets":[]}`)

	for name, backend := range testBackends(t) {
		if err := backend.Save(ctx, InventoryNamespace, doc); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got, err := backend.Load(ctx, InventoryNamespace)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if string(got) != string(doc) {
			t.Errorf("%s: round trip mismatch: %q", name, got)
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, backend := range testBackends(t) {
		backend.Save(ctx, ThemeNamespace, []byte(`{"isDarkMode":false}`))
		backend.Save(ctx, ThemeNamespace, []byte(`{"isDarkMode":true}`))

		got, err := backend.Load(ctx, ThemeNamespace)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if string(got) != `{"isDarkMode":true}` {
			t.Errorf("%s: expected latest document, got %q", name, got)
		}
	}
}

func TestNamespacesIndependent(t *testing.T) {
	ctx := context.Background()
	for name, backend := range testBackends(t) {
		backend.Save(ctx, InventoryNamespace, []byte("inventory"))
		backend.Save(ctx, SearchesNamespace, []byte("searches"))

		got, _ := backend.Load(ctx, InventoryNamespace)
		if string(got) != "inventory" {
			t.Errorf("%s: namespace collision: %q", name, got)
		}
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	for name, backend := range testBackends(t) {
		backend.Save(ctx, SearchesNamespace, []byte(`["scalpel"]`))
		if err := backend.Clear(ctx, SearchesNamespace); err != nil {
			t.Fatalf("%s: Clear: %v", name, err)
		}
		got, err := backend.Load(ctx, SearchesNamespace)
		if err != nil {
			t.Fatalf("%s: Load after clear: %v", name, err)
		}
		if got != nil {
			t.Errorf("%s: expected nil after clear, got %q", name, got)
		}

		// Clearing an absent namespace is not an error.
		if err := backend.Clear(ctx, SearchesNamespace); err != nil {
			t.Errorf("%s: Clear absent: %v", name, err)
		}
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	sqlite, err := Open(KindSQLite, filepath.Join(dir, "surgiset.sqlite3"), dir)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	defer sqlite.Close()
	if _, ok := sqlite.(*SQLiteBackend); !ok {
		t.Errorf("expected sqlite backend, got %T", sqlite)
	}

	file, err := Open(KindFile, "", dir)
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	defer file.Close()
	if _, ok := file.(*FileBackend); !ok {
		t.Errorf("expected file backend, got %T", file)
	}

	if _, err := Open("bogus", "", dir); err == nil {
		t.Error("expected error for unknown backend kind")
	}
}

func TestOpenAutoPrefersSQLite(t *testing.T) {
	dir := t.TempDir()

	backend, err := Open(KindAuto, filepath.Join(dir, "surgiset.sqlite3"), dir)
	if err != nil {
		t.Fatalf("Open auto: %v", err)
	}
	defer backend.Close()
	if _, ok := backend.(*SQLiteBackend); !ok {
		t.Errorf("expected auto to pick sqlite, got %T", backend)
	}
}
