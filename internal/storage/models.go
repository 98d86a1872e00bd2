package storage

import "time"

// SnapshotRecord describes one completed processing run: the corpus snapshot
// whose index is currently (or was once) persisted.
type SnapshotRecord struct {
	ID             string // UUID
	ChunkSize      int    // Computed chunk size in characters
	Overlap        int    // Overlap in characters (10% of chunk size)
	ChunkCount     int    // Number of chunks produced
	TextLength     int    // Total extracted text length in characters
	TotalBytes     int64  // Summed byte size of the uploaded files
	EmbeddingModel string // Embedding model the index was built with
	CreatedAt      time.Time
}

// DocumentRecord describes one uploaded document within a snapshot.
type DocumentRecord struct {
	ID         string // UUID
	SnapshotID string // Foreign key to snapshots.id
	Name       string // Upload filename
	SizeBytes  int64
	Extracted  bool // False when extraction produced no text
}
