// Package vectorindex implements the persisted vector index: an ordered set
// of chunk texts with their embedding vectors, brute-force cosine search,
// and durable storage backends.
package vectorindex

import (
	"fmt"
	"math"
	"sort"
)

// Index maps sequential chunk ids to (vector, original chunk text). It is
// built fresh on every processing run and is read-only afterwards, so
// concurrent searches are safe.
type Index struct {
	// Model is the identifier of the embedding model that produced the
	// vectors. Persisted alongside the data so a query with a different
	// model fails fast instead of silently producing meaningless scores.
	Model string

	// Dim is the vector dimension shared by all entries.
	Dim int

	Chunks  []string
	Vectors [][]float32
}

// Result is a single search hit.
type Result struct {
	Text  string
	Score float32
}

// Build constructs an index of exactly len(chunks) entries.
// Returns ErrEmptyInput for zero chunks and ErrDimensionMismatch when the
// chunk and vector counts disagree or the vectors are ragged.
func Build(chunks []string, vectors [][]float32, model string) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyInput
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", ErrDimensionMismatch, len(chunks), len(vectors))
	}

	dim := len(vectors[0])
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d", ErrDimensionMismatch, i, len(vec), dim)
		}
	}

	return &Index{
		Model:   model,
		Dim:     dim,
		Chunks:  chunks,
		Vectors: vectors,
	}, nil
}

// Size returns the number of indexed chunks.
func (idx *Index) Size() int {
	return len(idx.Chunks)
}

// Search returns the min(k, size) chunks most similar to the query vector,
// ordered by non-increasing cosine similarity. Ties keep insertion order.
// Brute force is fine at the corpus sizes this serves (tens to low hundreds
// of chunks).
func (idx *Index) Search(query []float32, k int) ([]Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(query) != idx.Dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimensionMismatch, len(query), idx.Dim)
	}

	results := make([]Result, 0, len(idx.Chunks))
	for i, vec := range idx.Vectors {
		results = append(results, Result{
			Text:  idx.Chunks[i],
			Score: cosine(query, vec),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// cosine computes cosine similarity between two equal-length vectors.
// Returns 0 when either vector has zero norm.
func cosine(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
