package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DraftStore holds open wizards. Drafts only live as long as the wizard is
// open, so every implementation is ephemeral.
type DraftStore interface {
	Save(ctx context.Context, d *Draft) error
	Load(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// MemoryDraftStore keeps drafts in process memory.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]*Draft)}
}

func (s *MemoryDraftStore) Save(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d.clone()
	return nil
}

func (s *MemoryDraftStore) Load(_ context.Context, id string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return d.clone(), nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	delete(s.drafts, id)
	return nil
}

// RedisDraftStore persists drafts as JSON blobs that expire after ttl.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	if client == nil {
		panic("booking: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
		tracer: otel.Tracer("healthsense.internal.booking.drafts"),
	}
}

func (s *RedisDraftStore) Save(ctx context.Context, d *Draft) error {
	ctx, span := s.tracer.Start(ctx, "booking.save_draft")
	defer span.End()

	data, err := json.Marshal(d)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("booking: failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(d.ID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("booking: failed to persist draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Load(ctx context.Context, id string) (*Draft, error) {
	ctx, span := s.tracer.Start(ctx, "booking.load_draft")
	defer span.End()

	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("booking: failed to load draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: failed to decode draft: %w", err)
	}
	return &d, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "booking.delete_draft")
	defer span.End()

	n, err := s.client.Del(ctx, draftKey(id)).Result()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("booking: failed to delete draft: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return nil
}

func draftKey(id string) string {
	return fmt.Sprintf("booking:draft:%s", id)
}
