package chat

import (
	"context"
	"sync"
	"time"
)

// EventType names a UI effect the page should apply.
type EventType string

const (
	EventMessage       EventType = "message"
	EventInputCleared  EventType = "input_cleared"
	EventTyping        EventType = "typing"
	EventTypingStopped EventType = "typing_stopped"
	EventScroll        EventType = "scroll"
	EventFocus         EventType = "focus"
	EventCleared       EventType = "cleared"
)

// Event is pushed to every subscriber of a session.
type Event struct {
	Type    EventType `json:"type"`
	Message *Message  `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// Scheduler abstracts the fixed UI delays so tests can run them instantly.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
	Sleep(ctx context.Context, d time.Duration) error
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

func (realScheduler) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// broadcaster fans events out to subscribers. Slow subscribers drop events
// rather than block the controller.
type broadcaster struct {
	mu   sync.RWMutex
	next int
	subs map[int]chan Event
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Event)}
}

func (b *broadcaster) publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *broadcaster) subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}
