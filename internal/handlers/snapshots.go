package handlers

import (
	"errors"
	"net/http"
	"time"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/storage"
)

// SnapshotHandler exposes metadata about the most recent ingestion run.
type SnapshotHandler struct {
	snapshots storage.SnapshotStore
	documents storage.DocumentStore
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshots storage.SnapshotStore, documents storage.DocumentStore) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, documents: documents}
}

// SnapshotResponse describes the latest ingestion run.
type SnapshotResponse struct {
	ID             string             `json:"id"`
	ChunkSize      int                `json:"chunk_size"`
	Overlap        int                `json:"overlap"`
	ChunkCount     int                `json:"chunk_count"`
	TextLength     int                `json:"text_length"`
	TotalBytes     int64              `json:"total_bytes"`
	EmbeddingModel string             `json:"embedding_model"`
	CreatedAt      string             `json:"created_at"`
	Documents      []DocumentResponse `json:"documents"`
}

// DocumentResponse describes one uploaded file within a snapshot.
type DocumentResponse struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Extracted bool   `json:"extracted"`
}

// ServeHTTP returns the latest snapshot with its documents, or 404 when no
// run has completed yet.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	snapshot, err := h.snapshots.Latest(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No documents have been processed yet.")
			return
		}
		logger.ErrorContext(ctx, "failed to load latest snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot")
		return
	}

	records, err := h.documents.ListBySnapshot(ctx, snapshot.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list snapshot documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot")
		return
	}

	docs := make([]DocumentResponse, len(records))
	for i, rec := range records {
		docs[i] = DocumentResponse{
			Name:      rec.Name,
			SizeBytes: rec.SizeBytes,
			Extracted: rec.Extracted,
		}
	}

	writeJSON(w, http.StatusOK, SnapshotResponse{
		ID:             snapshot.ID,
		ChunkSize:      snapshot.ChunkSize,
		Overlap:        snapshot.Overlap,
		ChunkCount:     snapshot.ChunkCount,
		TextLength:     snapshot.TextLength,
		TotalBytes:     snapshot.TotalBytes,
		EmbeddingModel: snapshot.EmbeddingModel,
		CreatedAt:      snapshot.CreatedAt.UTC().Format(time.RFC3339),
		Documents:      docs,
	})
}
