package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pdfchat/internal/handlers"
	"pdfchat/internal/indexer"
	"pdfchat/internal/rag"
	"pdfchat/internal/storage"
	"pdfchat/internal/vectorindex"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Pipeline       *indexer.Pipeline
	RAGEngine      rag.Engine
	IndexStore     vectorindex.Store
	DB             *sql.DB
	Snapshots      storage.SnapshotStore
	Documents      storage.DocumentStore
	DefaultModel   string
	MaxUploadBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	processHandler := handlers.NewProcessHandler(deps.Pipeline, deps.MaxUploadBytes)
	askHandler := handlers.NewAskHandler(deps.RAGEngine)
	modelsHandler := handlers.NewModelsHandler(deps.DefaultModel)
	snapshotHandler := handlers.NewSnapshotHandler(deps.Snapshots, deps.Documents)
	healthHandler := handlers.NewHealthHandler(deps.IndexStore, deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/process", processHandler)
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodGet, "/models", modelsHandler)
		r.Method(http.MethodGet, "/snapshots/latest", snapshotHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
