package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corsRouter mounts CORS in front of the routes browsers preflight most.
func corsRouter(origins []string) (http.Handler, *int) {
	calls := 0
	ok := func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}
	r := chi.NewRouter()
	r.Use(CORS(origins))
	r.Post("/api/chat/sessions", ok)
	r.Post("/api/bookings/{draftID}/actions/{action}", ok)
	r.Get("/api/doctors", ok)
	return r, &calls
}

func preflight(path, origin, method string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Request-ID")
	return req
}

func TestCORSPreflightForAPIRoutes(t *testing.T) {
	h, calls := corsRouter([]string{"https://healthsense.example"})

	for _, path := range []string{"/api/chat/sessions", "/api/bookings/0b6c/actions/select-date"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, preflight(path, "https://healthsense.example", http.MethodPost))

		require.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Equal(t, "https://healthsense.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	}
	assert.Zero(t, *calls)
}

func TestCORSPreflightRejectsUnservedMethod(t *testing.T) {
	h, calls := corsRouter([]string{"https://healthsense.example"})

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, preflight("/api/bookings/0b6c/actions/next", "https://healthsense.example", method))
		assert.Equal(t, http.StatusForbidden, rec.Code, method)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	}
	assert.Zero(t, *calls)
}

func TestCORSPreflightRejectsUnknownOrigin(t *testing.T) {
	h, _ := corsRouter([]string{"https://healthsense.example"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("/api/chat/sessions", "https://evil.example", http.MethodPost))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSSimpleRequest(t *testing.T) {
	h, calls := corsRouter([]string{" https://healthsense.example/ "})

	req := httptest.NewRequest(http.MethodPost, "/api/chat/sessions", nil)
	req.Header.Set("Origin", "https://healthsense.example")
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "https://healthsense.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Retry-After", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSUnknownOriginStillServed(t *testing.T) {
	h, calls := corsRouter([]string{"https://healthsense.example"})

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.Header.Set("Origin", "https://other.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	h, _ := corsRouter([]string{"*"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("/api/chat/sessions", "https://random.example", http.MethodPost))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://random.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
