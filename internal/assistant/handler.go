package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// Handler serves the assistant's /chat endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

type chatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	AgentUsed string `json:"agent_used,omitempty"`
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("assistant: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes is mounted under /chat.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Chat)
	r.Get("/history", h.History)
	r.Delete("/history/{sessionID}", h.ClearHistory)
	return r
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	answer, err := h.service.Ask(r.Context(), req.Message, req.History)
	if errors.Is(err, ErrEmptyMessage) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Message cannot be empty"})
		return
	}
	if err != nil {
		h.logger.Error("assistant: chat failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  answer.Response,
		Timestamp: answer.Timestamp.Format(time.RFC3339),
		AgentUsed: answer.AgentUsed,
	})
}

// History is a stateless placeholder; transcripts live in chat sessions.
func (h *Handler) History(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": []ChatMessage{},
		"message": "Chat history is kept per chat session at /api/chat/sessions/{id}/history",
	})
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Chat history cleared for session " + chi.URLParam(r, "sessionID"),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
