package vectorindex

import "errors"

var (
	// ErrEmptyInput is returned when an index build is attempted with zero chunks.
	ErrEmptyInput = errors.New("no chunks to index")
	// ErrDimensionMismatch is returned when chunk and vector counts disagree,
	// or when a vector's dimension does not match the rest of the index.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNotFound is returned when no index has ever been persisted at the
	// configured location. Callers should surface this as "process documents
	// first" guidance, not a raw I/O error.
	ErrNotFound = errors.New("index not found")
	// ErrModelMismatch is returned when the embedding model that built the
	// persisted index differs from the one configured at query time.
	ErrModelMismatch = errors.New("embedding model mismatch")
)
