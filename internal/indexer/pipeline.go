// Package indexer turns uploaded documents into a persisted vector index:
// extract text, compute chunk sizing, split into overlapping chunks, embed,
// build the index, and atomically replace the stored one.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/extract"
	"pdfchat/internal/storage"
	"pdfchat/internal/vectorindex"
)

// ErrNoDocuments is returned when Process is called with no documents.
var ErrNoDocuments = errors.New("no documents uploaded")

// Embedder vectorizes a batch of texts, one vector per input in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ProcessResult reports the diagnostics of one completed processing run.
type ProcessResult struct {
	SnapshotID string
	ChunkSize  int
	Overlap    int
	ChunkCount int
	TextLength int
	TotalBytes int64
	// Failed lists documents whose extraction produced no text. They do not
	// block processing of the others.
	Failed []string
}

// Pipeline orchestrates one "Process" run end to end. A run either completes
// and atomically replaces the persisted index, or fails leaving the prior
// index untouched.
type Pipeline struct {
	extractor *extract.Extractor
	splitter  *RecursiveSplitter
	embedder  Embedder
	model     string // embedding model identifier recorded in the index
	store     vectorindex.Store
	snapshots storage.SnapshotStore
	documents storage.DocumentStore
	logger    *slog.Logger
}

// NewPipeline creates a new processing pipeline. model names the embedding
// model the embedder is configured with; it is persisted with the index so a
// later query with a different model fails fast.
func NewPipeline(
	extractor *extract.Extractor,
	embedder Embedder,
	model string,
	store vectorindex.Store,
	snapshots storage.SnapshotStore,
	documents storage.DocumentStore,
) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		splitter:  NewRecursiveSplitter(),
		embedder:  embedder,
		model:     model,
		store:     store,
		snapshots: snapshots,
		documents: documents,
		logger:    slog.Default(),
	}
}

// Process ingests the uploaded documents and replaces the persisted index
// with a fresh corpus snapshot. With zero extractable text it returns
// vectorindex.ErrEmptyInput before touching the store.
func (p *Pipeline) Process(ctx context.Context, docs []extract.Document) (*ProcessResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	extracted := p.extractor.Extract(ctx, docs)
	textLength := utf8.RuneCountInString(extracted.Text)

	chunkSize := ComputeChunkSize(textLength, extracted.TotalBytes)
	overlap := Overlap(chunkSize)

	chunks := p.splitter.Split(extracted.Text, chunkSize, overlap)
	logger.InfoContext(ctx, "corpus chunked",
		"documents", len(docs),
		"text_length", textLength,
		"total_bytes", extracted.TotalBytes,
		"chunk_size", chunkSize,
		"overlap", overlap,
		"chunks", len(chunks),
	)

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: documents contained no extractable text", vectorindex.ErrEmptyInput)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}

	idx, err := vectorindex.Build(chunks, vectors, p.model)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	if err := p.store.Save(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}

	result := &ProcessResult{
		SnapshotID: uuid.NewString(),
		ChunkSize:  chunkSize,
		Overlap:    overlap,
		ChunkCount: len(chunks),
		TextLength: textLength,
		TotalBytes: extracted.TotalBytes,
		Failed:     extracted.Failed(),
	}

	p.recordSnapshot(ctx, result, extracted)
	return result, nil
}

// recordSnapshot writes the run's metadata for the diagnostics endpoints.
// The index is already durable at this point, so a metadata failure is
// logged but does not fail the run.
func (p *Pipeline) recordSnapshot(ctx context.Context, result *ProcessResult, extracted extract.Result) {
	logger := contextutil.LoggerFromContext(ctx)

	snap := &storage.SnapshotRecord{
		ID:             result.SnapshotID,
		ChunkSize:      result.ChunkSize,
		Overlap:        result.Overlap,
		ChunkCount:     result.ChunkCount,
		TextLength:     result.TextLength,
		TotalBytes:     result.TotalBytes,
		EmbeddingModel: p.model,
	}
	if err := p.snapshots.Insert(ctx, snap); err != nil {
		logger.WarnContext(ctx, "failed to record snapshot metadata", "snapshot_id", snap.ID, "error", err)
		return
	}

	records := make([]storage.DocumentRecord, 0, len(extracted.Documents))
	for _, doc := range extracted.Documents {
		records = append(records, storage.DocumentRecord{
			ID:         uuid.NewString(),
			SnapshotID: snap.ID,
			Name:       doc.Name,
			SizeBytes:  doc.SizeBytes,
			Extracted:  doc.Extracted,
		})
	}
	if err := p.documents.InsertAll(ctx, records); err != nil {
		logger.WarnContext(ctx, "failed to record document metadata", "snapshot_id", snap.ID, "error", err)
	}
}
