package packstore_test

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"bindery/internal/packstore"
	"bindery/internal/record"
)

func TestWriteBatchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actors.db")
	store, err := packstore.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entries := []record.Entry{
		{Key: "!actors!bbb", Value: map[string]any{"name": "Second"}},
		{Key: "!actors!aaa", Value: map[string]any{"name": "First"}},
		{Key: "!actors.items!aaa.ccc", Value: map[string]any{"name": "Shiv"}},
	}
	if err := store.WriteBatch(entries); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := packstore.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()

	doc, err := reopened.Get("!actors!aaa")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc["name"] != "First" {
		t.Errorf("unexpected document: %#v", doc)
	}

	var keys []string
	if err := reopened.ForEach(func(key string, _ map[string]any) error {
		keys = append(keys, key)
		return nil
	}); err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys not in ascending order: %v", keys)
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 keys, got %v", keys)
	}

	if n, err := reopened.Len(); err != nil || n != 3 {
		t.Errorf("Len = %d, %v; want 3", n, err)
	}
}

func TestCreateDiscardsPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.db")

	first, err := packstore.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := first.WriteBatch([]record.Entry{{Key: "!tables!stale", Value: map[string]any{"name": "Old"}}}); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := packstore.Create(path)
	if err != nil {
		t.Fatalf("re-Create failed: %v", err)
	}
	if err := second.WriteBatch([]record.Entry{{Key: "!tables!fresh", Value: map[string]any{"name": "New"}}}); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	if err := second.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := packstore.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.Get("!tables!stale"); !errors.Is(err, packstore.ErrNotFound) {
		t.Errorf("stale entry survived recreation: err = %v", err)
	}
	if _, err := reopened.Get("!tables!fresh"); err != nil {
		t.Errorf("fresh entry missing: %v", err)
	}
}

func TestOpenMissingPack(t *testing.T) {
	if _, err := packstore.Open(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("expected error opening a missing pack")
	}
}
