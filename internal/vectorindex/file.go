package vectorindex

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"pdfchat/internal/contextutil"
)

// persistedIndex is the on-disk gob layout. Versioned so a future format
// change can be detected instead of silently misread.
type persistedIndex struct {
	Version int
	Model   string
	Dim     int
	Chunks  []string
	Vectors [][]float32
}

const indexFormatVersion = 1

// FileStore persists the index as a single gob blob on the local filesystem.
// Writes go to a temporary file in the same directory followed by an atomic
// rename, so a reader never observes a partial index: it sees either the old
// snapshot or the new one.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed index store rooted at path. The parent
// directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Save writes the index, replacing any previously persisted one.
func (s *FileStore) Save(ctx context.Context, idx *Index) error {
	logger := contextutil.LoggerFromContext(ctx)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	payload := persistedIndex{
		Version: indexFormatVersion,
		Model:   idx.Model,
		Dim:     idx.Dim,
		Chunks:  idx.Chunks,
		Vectors: idx.Vectors,
	}
	if err := gob.NewEncoder(tmp).Encode(&payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close index file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace index: %w", err)
	}

	logger.InfoContext(ctx, "index persisted", "path", s.path, "chunks", idx.Size(), "dim", idx.Dim, "model", idx.Model)
	return nil
}

// Load reads the most recently persisted index.
// Returns ErrNotFound when no index has ever been saved.
func (s *FileStore) Load(ctx context.Context) (*Index, error) {
	logger := contextutil.LoggerFromContext(ctx)

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var payload persistedIndex
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	if payload.Version != indexFormatVersion {
		return nil, fmt.Errorf("unsupported index format version %d", payload.Version)
	}

	logger.DebugContext(ctx, "index loaded", "path", s.path, "chunks", len(payload.Chunks), "model", payload.Model)
	return &Index{
		Model:   payload.Model,
		Dim:     payload.Dim,
		Chunks:  payload.Chunks,
		Vectors: payload.Vectors,
	}, nil
}

// Exists reports whether an index has been persisted.
func (s *FileStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat index: %w", err)
	}
	return true, nil
}

var _ Store = (*FileStore)(nil)
