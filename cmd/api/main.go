package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"pdfchat/internal/config"
	"pdfchat/internal/extract"
	"pdfchat/internal/http"
	"pdfchat/internal/indexer"
	"pdfchat/internal/llm"
	"pdfchat/internal/rag"
	"pdfchat/internal/storage"
	"pdfchat/internal/vectorindex"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize metadata database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	snapshotRepo := storage.NewSnapshotRepo(db)
	documentRepo := storage.NewDocumentRepo(db)

	// Select the index store backend
	var store vectorindex.Store
	switch cfg.VectorBackend {
	case "qdrant":
		store, err = vectorindex.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection, cfg.EmbeddingVectorSize)
		if err != nil {
			log.Fatalf("Failed to create Qdrant store: %v", err)
		}
		slog.Info("Index store ready", "backend", "qdrant", "collection", cfg.QdrantCollection)
	default:
		store, err = vectorindex.NewFileStore(cfg.IndexPath)
		if err != nil {
			log.Fatalf("Failed to create file store: %v", err)
		}
		slog.Info("Index store ready", "backend", "file", "path", cfg.IndexPath)
	}

	embedder := llm.NewEmbeddingsClient(
		cfg.EmbeddingBaseURL,
		cfg.LLMAPIKey,
		cfg.EmbeddingModelName,
		cfg.EmbeddingVectorSize,
		cfg.ExternalTimeout,
	)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.ExternalTimeout)

	pipeline := indexer.NewPipeline(
		extract.New(),
		embedder,
		cfg.EmbeddingModelName,
		store,
		snapshotRepo,
		documentRepo,
	)

	ragEngine := rag.NewEngine(embedder, store, llmClient, cfg.EmbeddingModelName)
	slog.Info("RAG engine initialized")

	deps := &http.Deps{
		Pipeline:       pipeline,
		RAGEngine:      ragEngine,
		IndexStore:     store,
		DB:             db,
		Snapshots:      snapshotRepo,
		Documents:      documentRepo,
		DefaultModel:   cfg.LLMModelName,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
