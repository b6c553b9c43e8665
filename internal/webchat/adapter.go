package webchat

import (
	"time"

	"github.com/healthsense/healthsense-ai/internal/chat"
)

// eventFrame converts a controller event into the frame pushed to the page.
func eventFrame(sessionID string, e chat.Event) OutboundMessage {
	out := OutboundMessage{
		Type:      string(e.Type),
		SessionID: sessionID,
		Timestamp: e.At.UTC().Format(time.RFC3339),
	}
	if e.Message != nil {
		out.Role = string(e.Message.Role)
		out.Text = e.Message.Content
		out.Timestamp = e.Message.Timestamp.UTC().Format(time.RFC3339)
	}
	return out
}

func historyMessages(msgs []chat.Message) []HistoryMessage {
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{
			Role:      string(m.Role),
			Text:      m.Content,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return history
}
