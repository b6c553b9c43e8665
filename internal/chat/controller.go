package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/healthsense/healthsense-ai/internal/observability/metrics"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

const (
	// FallbackDelay is the pause before a canned reply is shown.
	FallbackDelay = 500 * time.Millisecond
	// ScrollDelay lets the page lay out a new message before scrolling.
	ScrollDelay = 100 * time.Millisecond
)

// Controller owns one chat session: its transcript and the awaiting flag.
type Controller struct {
	id        string
	replier   Replier
	history   HistoryStore
	scheduler Scheduler
	timeout   time.Duration
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
	now       func() time.Time
	events    *broadcaster

	mu         sync.Mutex
	awaiting   bool
	lastActive time.Time
}

func (c *Controller) ID() string { return c.id }

// Awaiting reports whether a reply is outstanding.
func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Subscribe streams the session's UI events until cancel is called.
func (c *Controller) Subscribe(buffer int) (<-chan Event, func()) {
	return c.events.subscribe(buffer)
}

// History returns the transcript in order.
func (c *Controller) History(ctx context.Context) ([]Message, error) {
	return c.history.List(ctx, c.id)
}

// Submit sends one user turn. Blank input and input arriving while a reply is
// outstanding are rejected without touching the transcript. Any failure of
// the assistant call is answered from the local fallback rules instead.
func (c *Controller) Submit(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.metrics.ObserveRejected("empty")
		return Reply{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.awaiting {
		c.mu.Unlock()
		c.metrics.ObserveRejected("awaiting")
		return Reply{}, ErrAwaitingResponse
	}
	c.awaiting = true
	c.lastActive = c.now()
	c.mu.Unlock()

	// The turn always completes once accepted, even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	defer func() {
		c.mu.Lock()
		c.awaiting = false
		c.mu.Unlock()
		c.emit(EventFocus, nil)
	}()

	start := c.now()
	c.emit(EventInputCleared, nil)
	if err := c.append(ctx, Message{Role: RoleUser, Content: text, Timestamp: start}); err != nil {
		return Reply{}, err
	}
	c.emit(EventTyping, nil)

	history, err := c.history.List(ctx, c.id)
	if err != nil {
		c.emit(EventTypingStopped, nil)
		return Reply{}, err
	}

	replyCtx, cancel := context.WithTimeout(ctx, c.timeout)
	answer, err := c.replier.Reply(replyCtx, text, history)
	cancel()
	c.emit(EventTypingStopped, nil)

	source := SourceRemote
	if err != nil {
		c.logger.Warn("chat: assistant unavailable, using fallback", "session_id", c.id, "error", err)
		source = SourceFallback
		if err := c.scheduler.Sleep(ctx, FallbackDelay); err != nil {
			return Reply{}, err
		}
		answer = FallbackReply(text)
	}

	msg := Message{Role: RoleAssistant, Content: answer, Timestamp: c.now()}
	if err := c.append(ctx, msg); err != nil {
		return Reply{}, err
	}
	c.metrics.ObserveReply(source, c.now().Sub(start).Seconds())
	return Reply{Message: msg, Source: source}, nil
}

// StartNewChat clears the transcript unconditionally.
func (c *Controller) StartNewChat(ctx context.Context) error {
	if err := c.history.Clear(ctx, c.id); err != nil {
		return err
	}
	c.mu.Lock()
	c.lastActive = c.now()
	c.mu.Unlock()
	c.emit(EventCleared, nil)
	c.emit(EventFocus, nil)
	return nil
}

func (c *Controller) append(ctx context.Context, msg Message) error {
	if err := c.history.Append(ctx, c.id, msg); err != nil {
		return err
	}
	m := msg
	c.emit(EventMessage, &m)
	c.scheduler.AfterFunc(ScrollDelay, func() { c.emit(EventScroll, nil) })
	return nil
}

func (c *Controller) emit(t EventType, msg *Message) {
	c.events.publish(Event{Type: t, Message: msg, At: c.now()})
}

func (c *Controller) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}
