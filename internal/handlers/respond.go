package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Hint suggests what the client can do about the error.
	Hint string `json:"hint,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeErrorHint writes an error response with a recovery hint.
func writeErrorHint(w http.ResponseWriter, statusCode int, message, hint string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message, Hint: hint})
}
