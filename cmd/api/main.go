package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fretehub/fretehub/internal/api/router"
	"github.com/fretehub/fretehub/internal/cep"
	appconfig "github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/events"
	"github.com/fretehub/fretehub/internal/intentions"
	"github.com/fretehub/fretehub/internal/leads"
	"github.com/fretehub/fretehub/internal/notify"
	"github.com/fretehub/fretehub/internal/observability/metrics"
	"github.com/fretehub/fretehub/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	var logger *logging.Logger
	if cfg.Env == "development" {
		logger = logging.NewText(cfg.LogLevel)
	} else {
		logger = logging.New(cfg.LogLevel)
	}
	logger.Info("starting fretehub API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	leadMetrics := metrics.NewLeadMetrics(registry)

	// Initialize repositories
	var (
		leadsRepo      leads.Repository
		intentionsRepo intentions.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		leadsRepo = leads.NewPostgresRepository(pool)
		intentionsRepo = intentions.NewPostgresRepository(pool)
		logger.Info("using postgres repositories")
	} else {
		leadsRepo = leads.NewInMemoryRepository()
		intentionsRepo = intentions.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
	}

	// Event bus and welcome email reaction
	bus := events.NewBus(logger)

	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		sender = notify.NewStubEmailSender(logger)
		logger.Warn("SENDGRID_API_KEY not set, welcome emails are stubbed")
	}
	mailer := notify.NewWelcomeMailer(sender, leadMetrics, cfg.PublicBaseURL, logger)
	bus.SubscribeLeadCreated(mailer.HandleLeadCreated)

	// Postal directory client and validator
	cepClient := cep.NewClient(cfg.CEPBaseURL, cep.WithLogger(logger))
	cepValidator := cep.NewValidator(cepClient, logger)

	// Initialize services and handlers
	leadsSvc := leads.NewService(leadsRepo, bus, leadMetrics, logger)
	intentionsSvc := intentions.NewService(intentionsRepo, cepValidator, leadsSvc, leadMetrics, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(leadsSvc, logger),
		IntentionsHandler:  intentions.NewHandler(intentionsSvc, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight welcome emails finish before exiting.
	if err := bus.Close(ctx); err != nil {
		logger.Warn("event bus did not drain in time", "error", err)
	}

	logger.Info("server stopped")
}
