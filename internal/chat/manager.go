package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthsense/healthsense-ai/internal/observability/metrics"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// Manager creates and tracks chat sessions.
type Manager struct {
	replier   Replier
	history   HistoryStore
	scheduler Scheduler
	timeout   time.Duration
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Controller
}

// Option customises a Manager.
type Option func(*Manager)

func WithScheduler(s Scheduler) Option {
	return func(m *Manager) {
		if s != nil {
			m.scheduler = s
		}
	}
}

// WithRequestTimeout bounds each assistant call.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func WithMetrics(cm *metrics.ChatMetrics) Option {
	return func(m *Manager) { m.metrics = cm }
}

func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager wires sessions to a replier. A nil history store keeps
// transcripts in memory.
func NewManager(replier Replier, history HistoryStore, opts ...Option) *Manager {
	if replier == nil {
		panic("chat: replier required")
	}
	if history == nil {
		history = NewMemoryHistoryStore()
	}
	m := &Manager{
		replier:   replier,
		history:   history,
		scheduler: realScheduler{},
		timeout:   30 * time.Second,
		logger:    logging.Default(),
		now:       time.Now,
		sessions:  make(map[string]*Controller),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a new empty session.
func (m *Manager) Create() *Controller {
	c := m.newController(uuid.NewString())
	m.mu.Lock()
	m.sessions[c.id] = c
	m.mu.Unlock()
	m.metrics.SessionOpened()
	m.logger.Info("chat: session created", "session_id", c.id)
	return c
}

// Get returns a live session. A session whose transcript survived in the
// history store (for example after a restart with Redis) is re-attached.
func (m *Manager) Get(ctx context.Context, id string) (*Controller, error) {
	m.mu.RLock()
	c, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return c, nil
	}

	msgs, err := m.history.List(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.sessions[id]; ok {
		return c, nil
	}
	c = m.newController(id)
	m.sessions[id] = c
	m.metrics.SessionOpened()
	return c, nil
}

// Remove forgets a session and clears its transcript.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	m.metrics.SessionClosed()
	return m.history.Clear(ctx, id)
}

// expiringStore is a HistoryStore that drops idle transcripts by itself.
type expiringStore interface {
	TTL() time.Duration
}

// Sweep drops sessions idle for longer than maxIdle and reports how many were
// dropped. Transcripts in a store without its own expiry are cleared too.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	var dropped []string
	for id, c := range m.sessions {
		if c.Awaiting() || c.idleSince().After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		m.metrics.SessionClosed()
		dropped = append(dropped, id)
	}
	m.mu.Unlock()

	if _, ok := m.history.(expiringStore); !ok {
		for _, id := range dropped {
			if err := m.history.Clear(context.Background(), id); err != nil {
				m.logger.Warn("chat: failed to clear swept transcript", "session_id", id, "error", err)
			}
		}
	}
	return len(dropped)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				m.logger.Debug("chat: swept idle sessions", "count", n)
			}
		}
	}
}

func (m *Manager) newController(id string) *Controller {
	return &Controller{
		id:         id,
		replier:    m.replier,
		history:    m.history,
		scheduler:  m.scheduler,
		timeout:    m.timeout,
		metrics:    m.metrics,
		logger:     m.logger,
		now:        m.now,
		events:     newBroadcaster(),
		lastActive: m.now(),
	}
}
