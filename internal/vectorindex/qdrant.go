package vectorindex

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"pdfchat/internal/contextutil"
)

// QdrantStore persists the index in a Qdrant collection. Intended for
// multi-session deployments where the index must outlive the local disk.
// A Save drops and recreates the collection, so replace is best-effort
// rather than atomic; the FileStore is the backend that carries the
// atomic-replace guarantee.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	vectorSize int
}

// NewQdrantStore creates a Qdrant-backed index store.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port is derived from the HTTP port.
func NewQdrantStore(urlStr, collection string, vectorSize int) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// gRPC port is typically HTTP port + 1.
	port := 6334
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client:     client,
		collection: collection,
		vectorSize: vectorSize,
	}, nil
}

// Save replaces the stored index with idx by recreating the collection.
func (s *QdrantStore) Save(ctx context.Context, idx *Index) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(idx.Dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	points := make([]*qdrant.PointStruct, 0, idx.Size())
	for i, vec := range idx.Vectors {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vec...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":        idx.Chunks[i],
				"chunk_index": i,
				"model":       idx.Model,
			}),
		})
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.InfoContext(ctx, "index persisted to Qdrant", "collection", s.collection, "chunks", idx.Size(), "dim", idx.Dim)
	return nil
}

// Load reconstructs the index by scrolling the full collection.
// Returns ErrNotFound when the collection does not exist or holds no points.
func (s *QdrantStore) Load(ctx context.Context) (*Index, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	type entry struct {
		index int
		text  string
		vec   []float32
		model string
	}

	// One index is at most a few hundred chunks, so a single scroll page
	// covers it.
	limit := uint32(10000)
	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scroll collection: %w", err)
	}

	entries := make([]entry, 0, len(points))
	for _, point := range points {
		e := entry{}
		if payload := point.Payload; payload != nil {
			if v, ok := payload["text"]; ok {
				e.text = v.GetStringValue()
			}
			if v, ok := payload["chunk_index"]; ok {
				e.index = int(v.GetIntegerValue())
			}
			if v, ok := payload["model"]; ok {
				e.model = v.GetStringValue()
			}
		}
		if vectors := point.Vectors; vectors != nil {
			if vec := vectors.GetVector(); vec != nil {
				e.vec = vec.GetData()
			}
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	// Scroll order is by point id; restore corpus order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].index < entries[j].index
	})

	chunks := make([]string, len(entries))
	vectors := make([][]float32, len(entries))
	for i, e := range entries {
		chunks[i] = e.text
		vectors[i] = e.vec
	}

	return Build(chunks, vectors, entries[0].model)
}

// Exists reports whether the index collection is present.
func (s *QdrantStore) Exists(ctx context.Context) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

var _ Store = (*QdrantStore)(nil)
