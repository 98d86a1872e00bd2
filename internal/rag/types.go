package rag

// AskRequest is a question against the persisted index. Model optionally
// names the chat model to use; empty means the configured default. The
// selected model is an explicit request parameter, never session state.
type AskRequest struct {
	Question string
	Model    string
}

// RetrievedContext describes one chunk that fed the prompt, for diagnostics.
type RetrievedContext struct {
	Rank    int
	Score   float32
	Preview string
}

// AskResponse carries the model's answer plus the retrieval diagnostics.
type AskResponse struct {
	Answer   string
	Contexts []RetrievedContext
}
