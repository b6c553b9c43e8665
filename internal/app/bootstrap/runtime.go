package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/healthsense/healthsense-ai/internal/booking"
	"github.com/healthsense/healthsense-ai/internal/chat"
	appconfig "github.com/healthsense/healthsense-ai/internal/config"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"github.com/redis/go-redis/v9"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, using in-memory stores", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildHistoryStore keeps chat transcripts in Redis when available.
func BuildHistoryStore(redisClient *redis.Client, cfg *appconfig.Config) chat.HistoryStore {
	if redisClient == nil {
		return chat.NewMemoryHistoryStore()
	}
	return chat.NewRedisHistoryStore(redisClient, cfg.SessionTTL)
}

// BuildDraftStore keeps booking drafts in Redis when available.
func BuildDraftStore(redisClient *redis.Client, cfg *appconfig.Config) booking.DraftStore {
	if redisClient == nil {
		return booking.NewMemoryDraftStore()
	}
	return booking.NewRedisDraftStore(redisClient, cfg.SessionTTL)
}

// BuildWizard applies the booking timezone and availability settings.
func BuildWizard(cfg *appconfig.Config) *booking.Wizard {
	return booking.NewWizard(
		booking.WithLocation(cfg.Location()),
		booking.WithAvailability(booking.NewAvailability(cfg.BookingAvailability, cfg.BookingAvailabilitySeed)),
	)
}
