package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/llm"
	"pdfchat/internal/rag"
	"pdfchat/internal/vectorindex"
)

// AskHandler handles HTTP requests for RAG queries.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{ragEngine: ragEngine}
}

// AskRequest represents the HTTP request payload for RAG queries.
// This mirrors rag.AskRequest but is defined here for HTTP layer separation.
type AskRequest struct {
	Question string `json:"question"`
	// Model optionally overrides the configured chat model for this query.
	Model string `json:"model,omitempty"`
}

// AskResponse represents the HTTP response payload for RAG queries.
type AskResponse struct {
	Answer   string            `json:"answer"`
	Contexts []ContextResponse `json:"contexts"`
}

// ContextResponse describes one retrieved chunk used to ground the answer.
type ContextResponse struct {
	Rank    int     `json:"rank"`
	Score   float32 `json:"score"`
	Preview string  `json:"preview"`
}

// ServeHTTP answers a question against the current document index.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.Model != "" && !llm.IsAvailableModel(req.Model) {
		logger.WarnContext(ctx, "unknown model requested", "model", req.Model)
		writeError(w, http.StatusBadRequest, "Unknown model. See GET /api/models for the available list.")
		return
	}

	ragResp, err := h.ragEngine.Ask(ctx, rag.AskRequest{
		Question: req.Question,
		Model:    req.Model,
	})
	if err != nil {
		h.handleAskError(w, ctx, err)
		return
	}

	contexts := make([]ContextResponse, len(ragResp.Contexts))
	for i, c := range ragResp.Contexts {
		contexts[i] = ContextResponse{
			Rank:    c.Rank,
			Score:   c.Score,
			Preview: c.Preview,
		}
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:   ragResp.Answer,
		Contexts: contexts,
	})
}

// handleAskError maps RAG engine errors to HTTP status codes.
func (h *AskHandler) handleAskError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "RAG query failed", "error", err)

	switch {
	case errors.Is(err, rag.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "Question is required")
	case errors.Is(err, vectorindex.ErrNotFound):
		writeErrorHint(w, http.StatusNotFound,
			"No document index exists yet.",
			"Upload documents and run POST /api/process first.")
	case errors.Is(err, vectorindex.ErrModelMismatch):
		writeErrorHint(w, http.StatusConflict,
			"The index was built with a different embedding model.",
			"Re-run POST /api/process to rebuild the index.")
	default:
		writeErrorHint(w, http.StatusBadGateway,
			"Failed to answer the question.",
			"The document might be too large for the model. Try smaller files or a more targeted question.")
	}
}
