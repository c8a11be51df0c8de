package api

import (
	"net/http"

	"github.com/britizen/backend/internal/domain/practiceset"
	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/domain/session"
	"github.com/britizen/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Mode       string   `json:"mode"`                 // "topic" or "rapid"
	AnswerMode string   `json:"answer_mode"`          // "choice" (default) or "typed"
	TopicID    string   `json:"topic_id,omitempty"`   // topic mode only
	SetIndex   int      `json:"set_index,omitempty"`  // topic mode only
	BatchSize  *float64 `json:"batch_size,omitempty"` // topic mode only; clamped to 20-30
	Shuffle    *bool    `json:"shuffle,omitempty"`    // default true
}

type SessionResponse struct {
	ID   string       `json:"id"`
	View session.View `json:"view"`
}

type SelectOptionRequest struct {
	OptionID string `json:"option_id"`
}

type TypedAnswerRequest struct {
	Text string `json:"text"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
//
// Settings are captured here and fixed for the session's lifetime; changing
// them later only affects sessions started afterwards.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start := service.StartRequest{
		Mode:       session.Mode(req.Mode),
		AnswerMode: session.AnswerModeChoice,
		TopicID:    questionbank.ID(req.TopicID),
		SetIndex:   req.SetIndex,
		BatchSize:  practiceset.DefaultSetSize,
		Shuffle:    true,
	}
	if req.AnswerMode == string(session.AnswerModeTyped) {
		start.AnswerMode = session.AnswerModeTyped
	}
	if req.BatchSize != nil {
		start.BatchSize = *req.BatchSize
	}
	if req.Shuffle != nil {
		start.Shuffle = *req.Shuffle
	}

	sessionID, view, err := h.sessions.Start(start)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponse{ID: sessionID, View: view})
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	view, err := h.sessions.View(sessionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// POST /sessions/{sessionID}/select
func (h *Handler) selectOption(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	var req SelectOptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.sessions.SelectOption(sessionID, questionbank.ID(req.OptionID))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// POST /sessions/{sessionID}/typed
func (h *Handler) setTypedAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	var req TypedAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.sessions.SetTypedAnswer(sessionID, req.Text)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// POST /sessions/{sessionID}/submit
//
// A submit with an empty draft, like any other invalid transition, is a
// silent no-op: the response is simply the unchanged snapshot. These
// correspond to clicks a well-behaved renderer disables anyway.
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	view, err := h.sessions.Submit(sessionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// POST /sessions/{sessionID}/next
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	view, err := h.sessions.Next(sessionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// POST /sessions/{sessionID}/previous
func (h *Handler) previousQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	view, err := h.sessions.Previous(sessionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// POST /sessions/{sessionID}/restart
func (h *Handler) restartSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	view, err := h.sessions.Restart(sessionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{ID: sessionID, View: view})
}

// DELETE /sessions/{sessionID}
func (h *Handler) abandonSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	if err := h.sessions.Abandon(sessionID); h.handleServiceError(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
