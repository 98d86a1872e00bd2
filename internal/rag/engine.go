// Package rag answers questions by retrieving relevant chunks from the
// persisted vector index and delegating answer synthesis to the chat model.
package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collaborators.go -package=mocks pdfchat/internal/rag Embedder,Completer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/llm"
	"pdfchat/internal/vectorindex"
)

// ErrEmptyQuestion is returned when a request carries no question text.
var ErrEmptyQuestion = errors.New("question is empty")

const (
	// topK is the number of chunks retrieved per question.
	topK = 3
	// answerTemperature and answerMaxTokens are fixed sampling parameters
	// for the answer call.
	answerTemperature = 0.3
	answerMaxTokens   = 1000
	// previewRunes bounds the chunk text echoed back in diagnostics.
	previewRunes = 200
)

// promptTemplate instructs the model to answer from the retrieved context
// only, and to say so rather than fabricate when the context lacks the
// answer. This is a prompt-level contract, not enforced here.
const promptTemplate = `Answer based on this context only. If the answer isn't in the context, say "answer is not available in the context".

Context:
%s

Question: %s

Answer:`

// Embedder vectorizes a query with the same model the index was built with.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Completer is the external chat model collaborator.
type Completer interface {
	Complete(ctx context.Context, prompt string, params llm.ChatParams) (string, error)
}

// Engine answers questions over the persisted index.
type Engine interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

type ragEngine struct {
	embedder       Embedder
	store          vectorindex.Store
	completer      Completer
	embeddingModel string // model the persisted index must have been built with
	logger         *slog.Logger
}

// NewEngine creates a new RAG engine. embeddingModel names the model the
// Embedder is configured with; an index built with a different model is
// rejected at query time.
func NewEngine(embedder Embedder, store vectorindex.Store, completer Completer, embeddingModel string) Engine {
	return &ragEngine{
		embedder:       embedder,
		store:          store,
		completer:      completer,
		embeddingModel: embeddingModel,
		logger:         slog.Default(),
	}
}

// Ask loads the persisted index, retrieves the chunks most similar to the
// question, and asks the chat model to answer from them. The answer text is
// returned unmodified.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, ErrEmptyQuestion
	}

	// ErrNotFound stays visible through the wrap so the handler can turn it
	// into "process documents first" guidance.
	idx, err := e.store.Load(ctx)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to load index: %w", err)
	}

	if idx.Model != e.embeddingModel {
		return AskResponse{}, fmt.Errorf("%w: index built with %q, configured model is %q",
			vectorindex.ErrModelMismatch, idx.Model, e.embeddingModel)
	}

	queryVector, err := e.embedder.EmbedText(ctx, question)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := idx.Search(queryVector, topK)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to search index: %w", err)
	}

	logger.InfoContext(ctx, "chunks retrieved",
		"question_length", len(question),
		"results", len(results),
		"index_size", idx.Size(),
	)

	// All retrieved chunks go into the prompt verbatim. With the maximum
	// chunk size this can approach a model's context window; known
	// limitation, kept deliberately.
	contextTexts := make([]string, 0, len(results))
	contexts := make([]RetrievedContext, 0, len(results))
	for i, res := range results {
		contextTexts = append(contextTexts, res.Text)
		contexts = append(contexts, RetrievedContext{
			Rank:    i + 1,
			Score:   res.Score,
			Preview: preview(res.Text),
		})
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(contextTexts, "\n\n---\n\n"), question)

	answer, err := e.completer.Complete(ctx, prompt, llm.ChatParams{
		Model:       req.Model,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		logger.ErrorContext(ctx, "chat model call failed", "model", req.Model, "error", err)
		return AskResponse{}, fmt.Errorf("failed to get answer from model: %w", err)
	}

	logger.InfoContext(ctx, "question answered", "answer_length", len(answer), "chunks_used", len(results))

	return AskResponse{
		Answer:   answer,
		Contexts: contexts,
	}, nil
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewRunes]) + "..."
}
