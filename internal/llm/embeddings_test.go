package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func embeddingsServer(t *testing.T, dim int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("request path = %q, want /v1/embeddings", r.URL.Path)
		}

		var req EmbeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		resp := EmbeddingsResponse{Data: make([]EmbeddingData, len(req.Input))}
		for i := range req.Input {
			vec := make([]float64, dim)
			vec[0] = float64(i + 1)
			resp.Data[i] = EmbeddingData{Embedding: vec}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	server := embeddingsServer(t, 3)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3, 5*time.Second)

	vectors, err := client.EmbedTexts(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("EmbedTexts() returned %d vectors, want 2", len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) != 3 {
			t.Errorf("vector %d has dimension %d, want 3", i, len(vec))
		}
	}
	// Vectors come back in input order.
	if vectors[0][0] != 1 || vectors[1][0] != 2 {
		t.Errorf("vectors out of order: %v", vectors)
	}
}

func TestEmbeddingsClient_EmbedText(t *testing.T) {
	server := embeddingsServer(t, 3)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3, 5*time.Second)

	vec, err := client.EmbedText(context.Background(), "query")
	if err != nil {
		t.Fatalf("EmbedText() error = %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("EmbedText() dimension = %d, want 3", len(vec))
	}
}

func TestEmbeddingsClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://unused", "k", "m", 3, time.Second)
	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts() with empty input should fail")
	}
}

func TestEmbeddingsClient_EmbedTexts_SizeMismatch(t *testing.T) {
	server := embeddingsServer(t, 5)
	defer server.Close()

	// Client expects 3 but the server returns 5-dimension vectors.
	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3, 5*time.Second)
	if _, err := client.EmbedTexts(context.Background(), []string{"x"}); err == nil {
		t.Error("EmbedTexts() should fail on vector size mismatch")
	}
}

func TestEmbeddingsClient_EmbedTexts_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(EmbeddingsResponse{
			Data: []EmbeddingData{{Embedding: []float64{1, 2, 3}}},
		})
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3, 5*time.Second)
	if _, err := client.EmbedTexts(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("EmbedTexts() should fail when vector count differs from input count")
	}
}

func TestEmbeddingsClient_EmbedTexts_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3, 5*time.Second)
	if _, err := client.EmbedTexts(context.Background(), []string{"x"}); err == nil {
		t.Error("EmbedTexts() should fail on non-200 status")
	}
}
