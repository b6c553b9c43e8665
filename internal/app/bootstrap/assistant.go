package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthsense/healthsense-ai/internal/assistant"
	"github.com/healthsense/healthsense-ai/internal/chat"
	appconfig "github.com/healthsense/healthsense-ai/internal/config"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// BuildLLMClient returns the Gemini client, or nil when no API key is set.
// The returned close function is always safe to call.
func BuildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (assistant.LLMClient, func() error, error) {
	noop := func() error { return nil }
	if cfg == nil {
		return nil, noop, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		logger.Info("gemini disabled; assistant answers from catalogs")
		return nil, noop, nil
	}
	client, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		return nil, noop, fmt.Errorf("bootstrap: gemini: %w", err)
	}
	logger.Info("gemini enabled", "model", cfg.GeminiModelID)
	return client, client.Close, nil
}

// BuildReplier picks the chat backend: a remote assistant when
// CHAT_BACKEND_URL is set, otherwise the in-process assistant.
func BuildReplier(cfg *appconfig.Config, local *assistant.Service, logger *logging.Logger) chat.Replier {
	if logger == nil {
		logger = logging.Default()
	}
	if url := strings.TrimSpace(cfg.ChatBackendURL); url != "" {
		logger.Info("chat replies from remote assistant", "url", url)
		return chat.NewHTTPReplier(url, cfg.ChatRequestTimeout)
	}
	return local
}
