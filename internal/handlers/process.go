package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/extract"
	"pdfchat/internal/indexer"
	"pdfchat/internal/vectorindex"
)

// processor runs the document ingestion pipeline. Satisfied by *indexer.Pipeline.
type processor interface {
	Process(ctx context.Context, docs []extract.Document) (*indexer.ProcessResult, error)
}

// ProcessHandler handles HTTP requests for document ingestion.
type ProcessHandler struct {
	pipeline       processor
	maxUploadBytes int64
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(pipeline processor, maxUploadBytes int64) *ProcessHandler {
	return &ProcessHandler{
		pipeline:       pipeline,
		maxUploadBytes: maxUploadBytes,
	}
}

// ProcessResponse represents the HTTP response for a completed ingestion run.
type ProcessResponse struct {
	Message    string   `json:"message"`
	SnapshotID string   `json:"snapshot_id"`
	ChunkSize  int      `json:"chunk_size"`
	Overlap    int      `json:"overlap"`
	ChunkCount int      `json:"chunk_count"`
	TextLength int      `json:"text_length"`
	TotalBytes int64    `json:"total_bytes"`
	// Failed lists uploaded files whose text could not be extracted.
	Failed []string `json:"failed,omitempty"`
}

// ServeHTTP handles multipart document uploads. Each file in the "files"
// field is extracted, chunked, embedded and indexed; the resulting index
// replaces any previous one.
func (h *ProcessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		logger.WarnContext(ctx, "no files in upload")
		writeError(w, http.StatusBadRequest, "Please upload at least one PDF file.")
		return
	}

	docs := make([]extract.Document, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			logger.WarnContext(ctx, "failed to open uploaded file", "file", fh.Filename, "error", err)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read uploaded file: %s", fh.Filename))
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			logger.WarnContext(ctx, "failed to read uploaded file", "file", fh.Filename, "error", err)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read uploaded file: %s", fh.Filename))
			return
		}
		docs = append(docs, extract.Document{Name: fh.Filename, Data: data})
	}

	result, err := h.pipeline.Process(ctx, docs)
	if err != nil {
		h.handleProcessError(w, ctx, err)
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{
		Message:    fmt.Sprintf("Computed chunk size: %d characters, generated %d chunks.", result.ChunkSize, result.ChunkCount),
		SnapshotID: result.SnapshotID,
		ChunkSize:  result.ChunkSize,
		Overlap:    result.Overlap,
		ChunkCount: result.ChunkCount,
		TextLength: result.TextLength,
		TotalBytes: result.TotalBytes,
		Failed:     result.Failed,
	})
}

// handleProcessError maps pipeline errors to HTTP status codes.
func (h *ProcessHandler) handleProcessError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "document processing failed", "error", err)

	switch {
	case errors.Is(err, indexer.ErrNoDocuments):
		writeError(w, http.StatusBadRequest, "Please upload at least one PDF file.")
	case errors.Is(err, vectorindex.ErrEmptyInput):
		writeErrorHint(w, http.StatusUnprocessableEntity,
			"No text could be extracted from the uploaded documents.",
			"Scanned PDFs without a text layer cannot be processed.")
	default:
		writeErrorHint(w, http.StatusBadGateway,
			"Failed to process documents.",
			"The embedding service may be unavailable. Please try again.")
	}
}
