// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of relying
// on package-level globals, every handler method receives its dependencies
// through this struct.
type Handler struct {
	bank     *questionbank.Bank
	contexts questionbank.ContextIndex
	sessions *service.SessionService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(bank *questionbank.Bank, contexts questionbank.ContextIndex, sessions *service.SessionService, logger *slog.Logger) *Handler {
	return &Handler{
		bank:     bank,
		contexts: contexts,
		sessions: sessions,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
// Returns false if decoding failed (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// handleServiceError checks for common service errors and writes the
// appropriate HTTP response. Returns true if an error was handled (caller
// should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, service.ErrTopicNotFound):
		http.Error(w, "topic not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNoQuestions):
		http.Error(w, "no questions available", http.StatusBadRequest)
	case errors.Is(err, service.ErrUnknownMode):
		http.Error(w, "unknown session mode", http.StatusBadRequest)
	default:
		h.logger.Error("service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return true
}
