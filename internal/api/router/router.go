package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/fretehub/fretehub/internal/http/middleware"
	"github.com/fretehub/fretehub/internal/intentions"
	"github.com/fretehub/fretehub/internal/leads"
	"github.com/fretehub/fretehub/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger            *logging.Logger
	LeadsHandler      *leads.Handler
	IntentionsHandler *intentions.Handler
	MetricsHandler    http.Handler

	CORSAllowedOrigins []string

	// Rate limiting for the public write endpoints; zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public lead-capture surface
	r.Group(func(public chi.Router) {
		if cfg.RateLimitPerSecond > 0 && cfg.RateLimitBurst > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}
		public.Post("/lead", cfg.LeadsHandler.Create)
		public.Get("/lead", cfg.LeadsHandler.List)
		public.Post("/intention", cfg.IntentionsHandler.Create)
		public.Put("/intention/{id}", cfg.IntentionsHandler.Associate)
	})

	return r
}
