package handlers

import (
	"net/http"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/llm"
)

// ModelsHandler lists the chat models a client may select for /api/ask.
type ModelsHandler struct {
	defaultModel string
}

// NewModelsHandler creates a new ModelsHandler.
func NewModelsHandler(defaultModel string) *ModelsHandler {
	return &ModelsHandler{defaultModel: defaultModel}
}

// ModelsResponse represents the available chat models.
type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}

func (h *ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, ModelsResponse{
		Models:  llm.AvailableModels(),
		Default: h.defaultModel,
	})
}
