package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/healthsense/healthsense-ai/internal/assistant"
	"github.com/healthsense/healthsense-ai/internal/booking"
	"github.com/healthsense/healthsense-ai/internal/doctors"
	httpmiddleware "github.com/healthsense/healthsense-ai/internal/http/middleware"
	"github.com/healthsense/healthsense-ai/internal/labtests"
	"github.com/healthsense/healthsense-ai/internal/observability/metrics"
	"github.com/healthsense/healthsense-ai/internal/webchat"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	DoctorsHandler   *doctors.Handler
	LabTestsHandler  *labtests.Handler
	BookingHandler   *booking.Handler
	ChatHandler      *webchat.Handler
	AssistantHandler *assistant.Handler

	MetricsHandler     http.Handler
	HTTPMetrics        *metrics.HTTPMetrics
	CORSAllowedOrigins []string

	// RateLimitRPS <= 0 disables per-IP rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.Metrics(cfg.HTTPMetrics))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(api chi.Router) {
		if cfg.RateLimitRPS > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
		}

		if cfg.DoctorsHandler != nil {
			api.Route("/api/doctors", func(r chi.Router) {
				// The slots route lives in booking; doctors knows nothing about availability.
				if cfg.BookingHandler != nil {
					r.Get("/{providerID}/slots", cfg.BookingHandler.ProviderSlots)
				}
				r.Mount("/", cfg.DoctorsHandler.Routes())
			})
			api.Mount("/api/hospitals", cfg.DoctorsHandler.HospitalRoutes())
		}
		if cfg.LabTestsHandler != nil {
			api.Mount("/api/tests", cfg.LabTestsHandler.Routes())
		}
		if cfg.BookingHandler != nil {
			api.Mount("/api/bookings", cfg.BookingHandler.Routes())
		}
		if cfg.ChatHandler != nil {
			api.Mount("/api/chat", cfg.ChatHandler.Routes())
		}
		if cfg.AssistantHandler != nil {
			api.Mount("/chat", cfg.AssistantHandler.Routes())
		}
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "healthsense-ai"})
}
