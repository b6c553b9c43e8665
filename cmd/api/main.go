package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthsense/healthsense-ai/internal/api/router"
	"github.com/healthsense/healthsense-ai/internal/app/bootstrap"
	"github.com/healthsense/healthsense-ai/internal/assistant"
	"github.com/healthsense/healthsense-ai/internal/booking"
	"github.com/healthsense/healthsense-ai/internal/chat"
	appconfig "github.com/healthsense/healthsense-ai/internal/config"
	"github.com/healthsense/healthsense-ai/internal/doctors"
	"github.com/healthsense/healthsense-ai/internal/labtests"
	"github.com/healthsense/healthsense-ai/internal/notify"
	"github.com/healthsense/healthsense-ai/internal/observability/metrics"
	"github.com/healthsense/healthsense-ai/internal/webchat"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	sweepInterval  = time.Minute
	maxSessionIdle = 30 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting healthsense-ai API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	svc, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer svc.close()

	go svc.manager.RunSweeper(ctx, sweepInterval, maxSessionIdle)

	// WriteTimeout stays 0 so chat websockets are not cut off.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           svc.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

type app struct {
	handler http.Handler
	manager *chat.Manager
	closers []func() error
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c()
	}
}

type appMetrics struct {
	handler http.Handler
	chat    *metrics.ChatMetrics
	booking *metrics.BookingMetrics
	http    *metrics.HTTPMetrics
}

// setupMetrics registers every collector on a private registry.
func setupMetrics() appMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return appMetrics{
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		chat:    metrics.NewChatMetrics(reg),
		booking: metrics.NewBookingMetrics(reg),
		http:    metrics.NewHTTPMetrics(reg),
	}
}

func buildApp(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*app, error) {
	a := &app{}
	m := setupMetrics()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		a.closers = append(a.closers, redisClient.Close)
		logger.Info("redis enabled", "addr", cfg.RedisAddr)
	}

	providers := doctors.NewStaticCatalog(nil)
	tests := labtests.NewStaticCatalog(nil)

	llm, closeLLM, err := bootstrap.BuildLLMClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeLLM)
	assistantSvc := assistant.NewService(llm, providers, tests, logger)

	a.manager = chat.NewManager(
		bootstrap.BuildReplier(cfg, assistantSvc, logger),
		bootstrap.BuildHistoryStore(redisClient, cfg),
		chat.WithRequestTimeout(cfg.ChatRequestTimeout),
		chat.WithMetrics(m.chat),
		chat.WithLogger(logger),
	)

	emailSender := notify.NewEmailSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	bookingSvc := booking.NewService(
		providers,
		bootstrap.BuildDraftStore(redisClient, cfg),
		bootstrap.BuildWizard(cfg),
		notify.NewService(emailSender, logger),
		m.booking,
		logger,
	)

	a.handler = router.New(&router.Config{
		Logger:             logger,
		DoctorsHandler:     doctors.NewHandler(providers, logger),
		LabTestsHandler:    labtests.NewHandler(tests, logger),
		BookingHandler:     booking.NewHandler(bookingSvc, logger),
		ChatHandler:        webchat.NewHandler(a.manager, logger),
		AssistantHandler:   assistant.NewHandler(assistantSvc, logger),
		MetricsHandler:     m.handler,
		HTTPMetrics:        m.http,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})
	return a, nil
}
