package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"pdfchat/internal/extract"
	"pdfchat/internal/indexer"
	"pdfchat/internal/rag"
	"pdfchat/internal/storage"
	"pdfchat/internal/vectorindex"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	dir := t.TempDir()

	store, err := vectorindex.NewFileStore(filepath.Join(dir, "index.gob"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	db, err := storage.New(filepath.Join(dir, "meta.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	snapshots := storage.NewSnapshotRepo(db)
	documents := storage.NewDocumentRepo(db)

	return &Deps{
		Pipeline:       indexer.NewPipeline(extract.New(), nil, "m", store, snapshots, documents),
		RAGEngine:      rag.NewEngine(nil, store, nil, "m"),
		IndexStore:     store,
		DB:             db,
		Snapshots:      snapshots,
		Documents:      documents,
		DefaultModel:   "llama-3.3-70b-versatile",
		MaxUploadBytes: 32 << 20,
	}
}

func TestNewRouter(t *testing.T) {
	if router := NewRouter(testDeps(t)); router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router := NewRouter(testDeps(t))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "GET /api/models",
			method:     http.MethodGet,
			path:       "/api/models",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/snapshots/latest before any run",
			method:     http.MethodGet,
			path:       "/api/snapshots/latest",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "POST /api/ask before any index",
			method:     http.MethodPost,
			path:       "/api/ask",
			body:       `{"question": "anything?"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "POST /api/ask invalid body",
			method:     http.MethodPost,
			path:       "/api/ask",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/process without multipart body",
			method:     http.MethodPost,
			path:       "/api/process",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /api/ask method not allowed",
			method:     http.MethodGet,
			path:       "/api/ask",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v; body: %s", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_CORSApplied(t *testing.T) {
	router := NewRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("Router should apply CORS middleware")
	}
}
