package vectorindex

//go:generate go run go.uber.org/mock/mockgen@latest -destination=../rag/mocks/mock_store.go -package=mocks pdfchat/internal/vectorindex Store

import "context"

// Store persists a complete index and loads it back. A Save replaces any
// previously persisted index in full; Load returns ErrNotFound when no index
// has ever been persisted.
type Store interface {
	Save(ctx context.Context, idx *Index) error
	Load(ctx context.Context) (*Index, error)
	Exists(ctx context.Context) (bool, error)
}
