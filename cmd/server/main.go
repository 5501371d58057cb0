// Package main is the entry point for the Wandrly deal search service.
//
//	@title						Wandrly Deal Search API
//	@version					1.0.0
//	@description				Finds cheap round trips from the home airports by scanning every route and date pair within a horizon against monthly fare tables.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/wandrly/wandrly-api/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/wandrly/wandrly-api/docs"

	dealhttp "github.com/wandrly/wandrly-api/internal/adapter/http"
	"github.com/wandrly/wandrly-api/internal/adapter/http/middleware"
	"github.com/wandrly/wandrly-api/internal/adapter/provider/ryanair"
	"github.com/wandrly/wandrly-api/internal/adapter/snapshot"
	"github.com/wandrly/wandrly-api/internal/config"
	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
	"github.com/wandrly/wandrly-api/internal/infrastructure/metrics"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
	"github.com/wandrly/wandrly-api/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.Logging.Caller,
		ServiceName:  "wandrly-api",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("snapshot_backend", cfg.Snapshot.Backend).
		Msg("Configuration loaded")

	store, closeStore, err := newSnapshotStore(cfg.Snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer closeStore.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.NewRegistry())
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	setupMiddleware(e, log, m)
	setupRoutes(e, cfg, log, store, m)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// newSnapshotStore opens the configured snapshot backend. The returned closer
// is always non-nil.
func newSnapshotStore(cfg config.SnapshotConfig) (snapshot.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.SnapshotBackendRedis:
		store, err := snapshot.NewRedisStore(snapshot.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.SnapshotBackendMemory:
		return snapshot.NewMemoryStore(), nopCloser{}, nil
	default:
		return snapshot.NewFileStore(cfg.Dir), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupMiddleware configures the Echo middleware stack.
func setupMiddleware(e *echo.Echo, log *logger.Logger, m *metrics.Metrics) {
	// A nil *Metrics must not become a non-nil interface
	var httpMetrics middleware.HTTPMetrics
	if m != nil {
		httpMetrics = m
	}
	middleware.Setup(e, log.Logger, httpMetrics)
}

// setupRoutes wires the upstream adapters, the use case and the HTTP handlers.
func setupRoutes(e *echo.Echo, cfg *config.Config, log *logger.Logger, store snapshot.Store, m *metrics.Metrics) {
	client := ryanair.NewClient(ryanair.Config{
		RoutesURL:         cfg.Upstream.RoutesURL,
		AirportsURL:       cfg.Upstream.AirportsURL,
		FaresURL:          cfg.Upstream.FaresURL,
		Currency:          cfg.Search.Currency,
		FareTimeout:       cfg.Timeouts.FareRequest,
		ReferenceTimeout:  cfg.Timeouts.ReferenceRequest,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
		Burst:             cfg.Upstream.Burst,
		UserAgent:         cfg.Upstream.UserAgent,
	}, ryanair.WithLogger(log))

	refData := ryanair.NewReferenceData(client, store,
		ryanair.WithAirportsRemoteFallback(cfg.Upstream.AirportsRemoteFallback),
		ryanair.WithReferenceLogger(log),
	)

	policy := domain.NewRegionPolicy(cfg.Search.HomeAirports, cfg.Search.ExcludedAirports)
	ucConfig := &usecase.Config{
		Concurrency: cfg.Search.Concurrency,
		FareTimeout: cfg.Timeouts.FareRequest,
		Currency:    cfg.Search.Currency,
		Location:    timeutil.MustGetLocation(cfg.Search.Timezone),
		Policy:      &policy,
	}

	opts := []usecase.Option{usecase.WithLogger(log)}
	if m != nil {
		opts = append(opts, usecase.WithMetrics(m))
	}
	dealUseCase := usecase.NewDealSearchUseCase(refData, ryanair.NewFareProvider(client), timeutil.NewRealClock(), ucConfig, opts...)

	defaults := dealhttp.RequestDefaults{
		Origins:         cfg.Search.DefaultOrigins,
		Durations:       cfg.Search.DefaultDurations,
		HorizonDays:     cfg.Search.DefaultHorizonDays,
		MaxPrice:        cfg.Search.DefaultMaxPrice,
		MaxHorizonDays:  cfg.Search.MaxHorizonDays,
		MaxDurationDays: cfg.Search.MaxDurationDays,
		MaxOrigins:      cfg.Search.MaxOrigins,
	}
	dealHandler := dealhttp.NewDealHandler(dealUseCase, defaults, cfg.Timeouts.Search)

	dealhttp.RegisterRoutes(e, dealHandler)

	if m != nil {
		dealhttp.RegisterMetrics(e, cfg.Metrics.Path, m.Handler())
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
