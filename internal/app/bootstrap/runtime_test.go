package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/healthsense/healthsense-ai/internal/assistant"
	"github.com/healthsense/healthsense-ai/internal/booking"
	"github.com/healthsense/healthsense-ai/internal/chat"
	appconfig "github.com/healthsense/healthsense-ai/internal/config"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRedisClient(t *testing.T) {
	logger := logging.New("error")
	assert.Nil(t, BuildRedisClient(context.Background(), &appconfig.Config{}, logger, true))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &appconfig.Config{RedisAddr: mr.Addr(), SessionTTL: time.Hour}
	client := BuildRedisClient(context.Background(), cfg, logger, true)
	require.NotNil(t, client)
	defer client.Close()

	assert.IsType(t, &chat.RedisHistoryStore{}, BuildHistoryStore(client, cfg))
	assert.IsType(t, &booking.RedisDraftStore{}, BuildDraftStore(client, cfg))
}

func TestBuildRedisClient_UnreachableFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := &appconfig.Config{RedisAddr: addr}
	assert.Nil(t, BuildRedisClient(context.Background(), cfg, logging.New("error"), true))
	assert.IsType(t, &chat.MemoryHistoryStore{}, BuildHistoryStore(nil, cfg))
	assert.IsType(t, &booking.MemoryDraftStore{}, BuildDraftStore(nil, cfg))
}

func TestBuildLLMClient_DisabledWithoutKey(t *testing.T) {
	client, closeFn, err := BuildLLMClient(context.Background(), &appconfig.Config{}, logging.New("error"))
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.NoError(t, closeFn())
}

func TestBuildReplier(t *testing.T) {
	local := assistant.NewService(nil, nil, nil, logging.New("error"))

	r := BuildReplier(&appconfig.Config{}, local, logging.New("error"))
	assert.Same(t, local, r)

	r = BuildReplier(&appconfig.Config{ChatBackendURL: "http://localhost:7860/chat", ChatRequestTimeout: time.Second}, local, logging.New("error"))
	assert.IsType(t, &chat.HTTPReplier{}, r)
}

func TestBuildWizard(t *testing.T) {
	cfg := &appconfig.Config{BookingTimezone: "America/New_York", BookingAvailability: "deterministic", BookingAvailabilitySeed: 7}
	w := BuildWizard(cfg)
	require.NotNil(t, w)
	assert.Equal(t, cfg.Location().String(), w.Today().Location().String())
}
