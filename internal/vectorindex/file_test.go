package vectorindex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "index.gob"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store
}

func buildTestIndex(t *testing.T, chunks []string) *Index {
	t.Helper()
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = []float32{float32(i + 1), 1, 0}
	}
	idx, err := Build(chunks, vectors, "test-model")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return idx
}

func TestFileStore_SaveLoad(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	idx := buildTestIndex(t, []string{"chunk one", "chunk two", "chunk three"})
	if err := store.Save(ctx, idx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Model != idx.Model {
		t.Errorf("Load() model = %q, want %q", loaded.Model, idx.Model)
	}
	if loaded.Dim != idx.Dim {
		t.Errorf("Load() dim = %d, want %d", loaded.Dim, idx.Dim)
	}
	if loaded.Size() != idx.Size() {
		t.Fatalf("Load() size = %d, want %d", loaded.Size(), idx.Size())
	}

	// A loaded index must search identically to the original.
	query := []float32{3, 1, 0}
	want, err := idx.Search(query, 2)
	if err != nil {
		t.Fatalf("Search() on original error = %v", err)
	}
	got, err := loaded.Search(query, 2)
	if err != nil {
		t.Fatalf("Search() on loaded error = %v", err)
	}
	for i := range want {
		if got[i].Text != want[i].Text || got[i].Score != want[i].Score {
			t.Errorf("Search() result %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFileStore_LoadBeforeSave(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_SaveReplaces(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, buildTestIndex(t, []string{"old a", "old b"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, buildTestIndex(t, []string{"new"})); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Size() != 1 || loaded.Chunks[0] != "new" {
		t.Errorf("Load() after replace = %v, want single chunk %q", loaded.Chunks, "new")
	}
}

func TestFileStore_Exists(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true before any save")
	}

	if err := store.Save(ctx, buildTestIndex(t, []string{"a"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err = store.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after save")
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "index.gob"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Save(context.Background(), buildTestIndex(t, []string{"a"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "index.gob" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want only index.gob", names)
	}
}
