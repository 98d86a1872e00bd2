package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdfchat/internal/rag"
	"pdfchat/internal/vectorindex"
)

// fakeEngine returns a canned response or error.
type fakeEngine struct {
	resp rag.AskResponse
	err  error
	got  rag.AskRequest
}

func (f *fakeEngine) Ask(ctx context.Context, req rag.AskRequest) (rag.AskResponse, error) {
	f.got = req
	if f.err != nil {
		return rag.AskResponse{}, f.err
	}
	return f.resp, nil
}

func TestAskHandler(t *testing.T) {
	engine := &fakeEngine{
		resp: rag.AskResponse{
			Answer: "the answer",
			Contexts: []rag.RetrievedContext{
				{Rank: 1, Score: 0.9, Preview: "first chunk"},
				{Rank: 2, Score: 0.5, Preview: "second chunk"},
			},
		},
	}
	handler := NewAskHandler(engine)

	body := `{"question": "what is this?", "model": "llama3-8b-8192"}`
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp AskResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "the answer" {
		t.Errorf("answer = %q, want %q", resp.Answer, "the answer")
	}
	if len(resp.Contexts) != 2 || resp.Contexts[0].Preview != "first chunk" {
		t.Errorf("contexts = %+v, want the engine's contexts", resp.Contexts)
	}
	if engine.got.Question != "what is this?" || engine.got.Model != "llama3-8b-8192" {
		t.Errorf("engine received %+v, want question and model passed through", engine.got)
	}
}

func TestAskHandler_Validation(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			body:       "",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "invalid body",
			method:     http.MethodPost,
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty question",
			method:     http.MethodPost,
			body:       `{"question": "  "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown model",
			method:     http.MethodPost,
			body:       `{"question": "q", "model": "gpt-99"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAskHandler(&fakeEngine{})
			req := httptest.NewRequest(tt.method, "/api/ask", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAskHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantHint   bool
	}{
		{
			name:       "no index yet",
			err:        fmt.Errorf("failed to load index: %w", vectorindex.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantHint:   true,
		},
		{
			name:       "stale embedding model",
			err:        fmt.Errorf("%w: index built with old", vectorindex.ErrModelMismatch),
			wantStatus: http.StatusConflict,
			wantHint:   true,
		},
		{
			name:       "external service failure",
			err:        fmt.Errorf("failed to get answer from model: boom"),
			wantStatus: http.StatusBadGateway,
			wantHint:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAskHandler(&fakeEngine{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question": "q"}`))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response has empty message")
			}
			if tt.wantHint && resp.Hint == "" {
				t.Error("error response missing a recovery hint")
			}
		})
	}
}
