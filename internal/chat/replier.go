package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// apologyReply is used when the backend answers 2xx without any reply text.
const apologyReply = "I apologize, but I encountered an error. Please try again."

// Replier produces the assistant's answer for a user turn. history already
// includes the new user message.
type Replier interface {
	Reply(ctx context.Context, message string, history []Message) (string, error)
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, message string, history []Message) (string, error)

func (f ReplierFunc) Reply(ctx context.Context, message string, history []Message) (string, error) {
	return f(ctx, message, history)
}

// WireMessage is a transcript entry as exchanged with the assistant backend.
type WireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ReplyRequest is the body of POST /chat.
type ReplyRequest struct {
	Message string        `json:"message"`
	History []WireMessage `json:"history"`
}

type replyResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

// ToWire strips timestamps for the backend request.
func ToWire(history []Message) []WireMessage {
	out := make([]WireMessage, 0, len(history))
	for _, m := range history {
		out = append(out, WireMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// HTTPReplier calls a remote assistant over HTTP.
type HTTPReplier struct {
	url    string
	client *http.Client
	tracer trace.Tracer
}

// NewHTTPReplier targets url (the backend's POST /chat endpoint).
func NewHTTPReplier(url string, timeout time.Duration) *HTTPReplier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPReplier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		tracer: otel.Tracer("healthsense.internal.chat.replier"),
	}
}

// Reply returns the "response" field, else "message", else a fixed apology.
// Transport failures, non-2xx statuses and malformed bodies are errors.
func (r *HTTPReplier) Reply(ctx context.Context, message string, history []Message) (string, error) {
	ctx, span := r.tracer.Start(ctx, "chat.remote_reply")
	defer span.End()
	span.SetAttributes(attribute.Int("healthsense.chat.history_len", len(history)))

	body, err := json.Marshal(ReplyRequest{Message: message, History: ToWire(history)})
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("chat: call assistant: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("chat: assistant returned status %d", resp.StatusCode)
		span.RecordError(err)
		return "", err
	}

	var out replyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("chat: decode assistant reply: %w", err)
	}
	switch {
	case out.Response != "":
		return out.Response, nil
	case out.Message != "":
		return out.Message, nil
	default:
		return apologyReply, nil
	}
}
