// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Bank
	mux.HandleFunc("GET /bank", h.getBank)
	mux.HandleFunc("GET /topics", h.listTopics)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/select", h.selectOption)
	mux.HandleFunc("POST /sessions/{sessionID}/typed", h.setTypedAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/submit", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/next", h.nextQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/previous", h.previousQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/restart", h.restartSession)
	mux.HandleFunc("DELETE /sessions/{sessionID}", h.abandonSession)
}
