package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SnapshotStore defines the interface for snapshot metadata operations.
type SnapshotStore interface {
	// Insert records a completed processing run. The record's ID must be set.
	Insert(ctx context.Context, snap *SnapshotRecord) error
	// Latest returns the most recent snapshot. Returns ErrNotFound when no
	// processing run has ever completed.
	Latest(ctx context.Context) (*SnapshotRecord, error)
}

// SnapshotRepo provides snapshot metadata operations backed by SQLite.
// It implements the SnapshotStore interface.
type SnapshotRepo struct {
	db *sql.DB
}

// NewSnapshotRepo creates a new SnapshotRepo.
func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Insert records a completed processing run.
func (r *SnapshotRepo) Insert(ctx context.Context, snap *SnapshotRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, chunk_size, overlap, chunk_count, text_length, total_bytes, embedding_model)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.ChunkSize, snap.Overlap, snap.ChunkCount, snap.TextLength, snap.TotalBytes, snap.EmbeddingModel,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot.
func (r *SnapshotRepo) Latest(ctx context.Context) (*SnapshotRecord, error) {
	var snap SnapshotRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, chunk_size, overlap, chunk_count, text_length, total_bytes, embedding_model, created_at
		 FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.ChunkSize, &snap.Overlap, &snap.ChunkCount, &snap.TextLength, &snap.TotalBytes, &snap.EmbeddingModel, &snap.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	return &snap, nil
}

var _ SnapshotStore = (*SnapshotRepo)(nil)
