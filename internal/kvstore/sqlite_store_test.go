package kvstore

import (
	"path/filepath"
	"testing"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habitkeep.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store
}

func TestSQLiteStoreSetGetDelete(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Errorf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set("key", "v1"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	// Upsert.
	if err := store.Set("key", "v2"); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	v, ok, err := store.Get("key")
	if err != nil || !ok || v != "v2" {
		t.Errorf("expected v2, got %q ok=%v err=%v", v, ok, err)
	}

	if err := store.Delete("key"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, ok, _ := store.Get("key"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestSQLiteStorePersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitkeep.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init: %v", err)
	}
	if err := store.Set("key", "value"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("key")
	if err != nil || !ok || v != "value" {
		t.Errorf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteStoreLoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habitkeep.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized store")
	}
}

func TestSQLiteStoreKeys(t *testing.T) {
	store := setupSQLiteStore(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := store.Set(k, "v"); err != nil {
			t.Fatalf("failed to set %q: %v", k, err)
		}
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("failed to list keys: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 keys, got %d", len(keys))
	}
}
