package webchat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/healthsense/healthsense-ai/internal/chat"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"golang.org/x/net/websocket"
)

const eventBuffer = 64

// Handler exposes chat sessions over REST and WebSocket.
type Handler struct {
	manager *chat.Manager
	logger  *logging.Logger
}

// InboundMessage is what the page sends over the socket.
type InboundMessage struct {
	Type string `json:"type"` // "message", "new_chat", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we push to the page.
type OutboundMessage struct {
	Type      string           `json:"type"` // controller event types plus "session", "history", "error", "pong"
	Text      string           `json:"text,omitempty"`
	Role      string           `json:"role,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
	Timestamp string           `json:"timestamp,omitempty"`
	Messages  []HistoryMessage `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history responses.
type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type createResponse struct {
	SessionID string      `json:"session_id"`
	Reply     *chat.Reply `json:"reply,omitempty"`
}

func NewHandler(manager *chat.Manager, logger *logging.Logger) *Handler {
	if manager == nil {
		panic("webchat: manager required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{manager: manager, logger: logger}
}

// Routes is mounted under /api/chat.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sessions", h.HandleCreate)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Post("/messages", h.HandleMessage)
		r.Get("/history", h.HandleHistory)
		r.Delete("/history", h.HandleClear)
		r.Get("/ws", h.HandleWebSocket)
	})
	return r
}

// HandleCreate opens a session. A non-empty q query parameter is submitted
// once as the first user turn.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c := h.manager.Create()
	resp := createResponse{SessionID: c.ID()}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		reply, err := c.Submit(r.Context(), q)
		if err != nil {
			h.logger.Error("webchat: initial query failed", "session_id", c.ID(), "error", err)
			h.fail(w, err)
			return
		}
		resp.Reply = &reply
	}
	writeJSON(w, http.StatusCreated, resp)
}

// HandleMessage submits one user turn and returns the assistant reply.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	reply, err := c.Submit(r.Context(), req.Text)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// HandleHistory returns the session transcript.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	msgs, err := c.History(r.Context())
	if err != nil {
		h.logger.Error("webchat: failed to load history", "session_id", c.ID(), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": c.ID(), "messages": historyMessages(msgs)})
}

// HandleClear starts a new chat in the same session.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := c.StartNewChat(r.Context()); err != nil {
		h.logger.Error("webchat: failed to clear history", "session_id", c.ID(), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear history"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleWebSocket upgrades to WebSocket and streams controller events.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, c)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, c *chat.Controller) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: c.ID()})
	if msgs, err := c.History(ctx); err == nil && len(msgs) > 0 {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: historyMessages(msgs)})
	}

	events, unsubscribe := c.Subscribe(eventBuffer)
	defer unsubscribe()
	go func() {
		for e := range events {
			if err := websocket.JSON.Send(conn, eventFrame(c.ID(), e)); err != nil {
				h.logger.Debug("webchat: push failed", "session_id", c.ID(), "error", err)
				return
			}
		}
	}()

	h.logger.Info("webchat: connection opened", "session_id", c.ID())

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", c.ID(), "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
		case "new_chat":
			if err := c.StartNewChat(ctx); err != nil {
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "Sorry, something went wrong. Please try again."})
			}
		case "message":
			// Replies arrive as events; the read loop keeps serving pings meanwhile.
			go func(text string) {
				if _, err := c.Submit(ctx, text); err != nil {
					_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: errorText(err)})
				}
			}(msg.Text)
		}
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*chat.Controller, bool) {
	c, err := h.manager.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return c, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errorText(err)})
	case errors.Is(err, chat.ErrAwaitingResponse):
		writeJSON(w, http.StatusConflict, map[string]string{"error": errorText(err)})
	case errors.Is(err, chat.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": errorText(err)})
	default:
		h.logger.Error("webchat: request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return "message is empty"
	case errors.Is(err, chat.ErrAwaitingResponse):
		return "please wait for the current reply"
	case errors.Is(err, chat.ErrSessionNotFound):
		return "session not found"
	default:
		return "Sorry, something went wrong. Please try again."
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
