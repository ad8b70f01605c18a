package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-dashboard/internal/apiclient"
	"github.com/jwalitptl/hospital-dashboard/internal/config"
	"github.com/jwalitptl/hospital-dashboard/internal/entity"
	"github.com/jwalitptl/hospital-dashboard/internal/handler/auth"
	"github.com/jwalitptl/hospital-dashboard/internal/handler/collection"
	"github.com/jwalitptl/hospital-dashboard/internal/handler/health"
	"github.com/jwalitptl/hospital-dashboard/internal/handler/layout"
	promhandler "github.com/jwalitptl/hospital-dashboard/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	"github.com/jwalitptl/hospital-dashboard/internal/router"
	"github.com/jwalitptl/hospital-dashboard/internal/session"
	"github.com/jwalitptl/hospital-dashboard/internal/web"
	"github.com/jwalitptl/hospital-dashboard/pkg/logger"
	"github.com/jwalitptl/hospital-dashboard/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(cfg.Metrics.Namespace, registry)

	// Initialize hospital API client
	api := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, logger.Component(appLogger, "apiclient"), m)

	// Initialize session store
	store, closeStore, err := newSessionStore(cfg.Session, m)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize session store")
	}
	defer closeStore()

	appLogger.Warn().
		Int64("batiment_id", cfg.API.ServiceBatimentID).
		Msg("services created without a building are attached to the configured default building")

	// Initialize handlers
	deps := entity.Deps{
		API:               api,
		Log:               logger.Component(appLogger, "form"),
		ServiceBatimentID: cfg.API.ServiceBatimentID,
	}
	pages := []router.Handler{
		auth.NewHandler(),
		layout.NewHandler(),
		collection.NewHandler(entity.Personnel(deps), m),
		collection.NewHandler(entity.Service(deps), m),
		collection.NewHandler(entity.Batiment(deps), m),
		collection.NewHandler(entity.Patient(deps), m),
		collection.NewHandler(entity.Section(deps), m),
	}

	templates, err := web.Templates()
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to parse templates")
	}

	// Setup router
	r := router.NewRouter(
		health.NewHandler(api, 0),
		promhandler.New(registry, cfg.Metrics.Namespace),
		pages,
		router.RouterConfig{
			Mode:      cfg.Server.Mode,
			Logger:    appLogger,
			Templates: templates,
			Static:    web.Static(),
			Store:     store,
			Session: middleware.SessionConfig{
				CookieName: cfg.Session.CookieName,
				TTL:        cfg.Session.TTL,
				Secure:     cfg.Session.Secure,
			},
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			MetricsEnabled:   cfg.Metrics.Enabled,
		},
	)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Str("api", cfg.API.BaseURL).Msg("starting dashboard")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	appLogger.Info().Msg("server exited properly")
}

func newSessionStore(cfg config.SessionConfig, m *metrics.Metrics) (session.Store, func(), error) {
	switch cfg.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rs.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis session store")
			}
		}
		return session.Instrument("redis", rs, m), closeFn, nil
	default:
		return session.Instrument("memory", session.NewMemoryStore(cfg.TTL), m), func() {}, nil
	}
}
