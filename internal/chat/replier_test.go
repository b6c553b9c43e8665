package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPReplier(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{name: "response field", status: http.StatusOK, body: `{"response":"from response","message":"ignored"}`, want: "from response"},
		{name: "message field", status: http.StatusOK, body: `{"message":"from message"}`, want: "from message"},
		{name: "neither field", status: http.StatusOK, body: `{}`, want: apologyReply},
		{name: "server error", status: http.StatusInternalServerError, body: `{"response":"nope"}`, wantErr: true},
		{name: "malformed body", status: http.StatusOK, body: `not json`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReplyRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			history := []Message{{Role: RoleUser, Content: "hi", Timestamp: time.Now()}}
			out, err := NewHTTPReplier(srv.URL, time.Second).Reply(context.Background(), "hi", history)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
			assert.Equal(t, ReplyRequest{Message: "hi", History: []WireMessage{{Role: "user", Content: "hi"}}}, got)
		})
	}
}

func TestHTTPReplier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPReplier(url, time.Second).Reply(context.Background(), "hi", nil)
	require.Error(t, err)
}
