package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for per-document metadata operations.
type DocumentStore interface {
	// InsertAll records the documents of one snapshot. Each record's ID and
	// SnapshotID must be set.
	InsertAll(ctx context.Context, docs []DocumentRecord) error
	// ListBySnapshot returns the documents of a snapshot in insertion order.
	// Returns an empty slice when the snapshot has no documents.
	ListBySnapshot(ctx context.Context, snapshotID string) ([]DocumentRecord, error)
}

// DocumentRepo provides document metadata operations backed by SQLite.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// InsertAll records the documents of one snapshot in a single transaction.
func (r *DocumentRepo) InsertAll(ctx context.Context, docs []DocumentRecord) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, doc := range docs {
		extracted := 0
		if doc.Extracted {
			extracted = 1
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, snapshot_id, name, size_bytes, extracted) VALUES (?, ?, ?, ?, ?)",
			doc.ID, doc.SnapshotID, doc.Name, doc.SizeBytes, extracted,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document %s: %w", doc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit documents: %w", err)
	}
	return nil
}

// ListBySnapshot returns the documents of a snapshot in insertion order.
func (r *DocumentRepo) ListBySnapshot(ctx context.Context, snapshotID string) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, snapshot_id, name, size_bytes, extracted FROM documents WHERE snapshot_id = ? ORDER BY rowid",
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		var extracted int
		if err := rows.Scan(&doc.ID, &doc.SnapshotID, &doc.Name, &doc.SizeBytes, &extracted); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Extracted = extracted != 0
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

var _ DocumentStore = (*DocumentRepo)(nil)
