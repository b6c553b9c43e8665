package chat

import (
	"errors"
	"time"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat transcript. Transcripts are append-only
// until the user starts a new chat.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Reply sources.
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

// Reply is the assistant turn produced by Submit.
type Reply struct {
	Message Message `json:"message"`
	Source  string  `json:"source"`
}

var (
	ErrEmptyMessage     = errors.New("chat: message is empty")
	ErrAwaitingResponse = errors.New("chat: still waiting for the previous reply")
	ErrSessionNotFound  = errors.New("chat: session not found")
)
