package assistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	r.Mount("/chat", NewHandler(newTestService(nil), nil).Routes())
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestChat(t *testing.T) {
	w := serve(newTestRouter(), http.MethodPost, "/chat", `{"message":"compare hospitals","history":[]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hospital Comparison Agent", resp.AgentUsed)
	assert.Equal(t, "2026-03-04T14:30:00Z", resp.Timestamp)
	assert.NotEmpty(t, resp.Response)
}

func TestChat_EmptyMessage(t *testing.T) {
	w := serve(newTestRouter(), http.MethodPost, "/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Message cannot be empty"}`, w.Body.String())

	w = serve(newTestRouter(), http.MethodPost, "/chat", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHistoryEndpoints(t *testing.T) {
	router := newTestRouter()

	w := serve(router, http.MethodGet, "/chat/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var hist struct {
		Success bool          `json:"success"`
		History []ChatMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	assert.True(t, hist.Success)
	assert.Empty(t, hist.History)

	w = serve(router, http.MethodDelete, "/chat/history/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chat history cleared for session abc")
}
