package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/tasklist/pkg/api"
	"github.com/platinummonkey/tasklist/pkg/auth"
	"github.com/platinummonkey/tasklist/pkg/config"
	"github.com/platinummonkey/tasklist/pkg/middleware"
	"github.com/platinummonkey/tasklist/pkg/observability"
	"github.com/platinummonkey/tasklist/pkg/storage/sqlstore"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server exited with error")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout)

	// Tracing and OTel metrics export
	cfg.Observability.OTel.ServiceVersion = version
	providers, err := observability.InitOTel(ctx, cfg.Observability.OTel, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	shutdown.Register("opentelemetry", providers.Shutdown)

	otelMetrics, err := observability.NewOTelMetrics(otel.Meter(observability.MeterName))
	if err != nil {
		return fmt.Errorf("failed to create OTel instruments: %w", err)
	}

	storageObservers := observability.StorageObservers{otelMetrics}
	authObservers := observability.AuthObservers{otelMetrics}

	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = observability.NewMetrics(registry)
		storageObservers = append(storageObservers, metrics)
		authObservers = append(authObservers, metrics)
	}

	// Storage
	store, err := sqlstore.Open(ctx, cfg.Storage, sqlstore.WithObserver(storageObservers))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	shutdown.Register("storage", func(context.Context) error {
		return store.Close()
	})

	if err := store.Migrate(ctx); err != nil {
		shutdown.Shutdown()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.WithField("driver", store.Driver()).Info("Storage initialized")

	if metrics != nil {
		if err := metrics.RegisterDBStats(store.DB(), "tasklist"); err != nil {
			logger.WithError(err).Warn("Failed to register connection pool metrics")
		}
	}

	// Credentials
	hasher, err := auth.NewBcryptHasher(cfg.Auth.HashCost)
	if err != nil {
		shutdown.Shutdown()
		return err
	}

	var tokenOpts []auth.TokenOption
	if cfg.Auth.TokenIssuer != "" {
		tokenOpts = append(tokenOpts, auth.WithIssuer(cfg.Auth.TokenIssuer))
	}
	codec, err := auth.NewTokenCodec([]byte(cfg.Auth.TokenSecret), tokenOpts...)
	if err != nil {
		shutdown.Shutdown()
		return err
	}

	accounts := auth.NewService(store, store, hasher, codec,
		auth.WithTokenTTL(cfg.Auth.TokenTTL),
		auth.WithLogger(logger),
		auth.WithAttemptObserver(authObservers),
	)
	guard := middleware.NewAuthMiddleware(codec,
		middleware.WithAuthLogger(logger),
		middleware.WithRejectionObserver(authObservers),
	)

	// API server
	serverOpts := []api.ServerOption{
		api.WithLogger(logger),
		api.WithStaticDir(cfg.Server.StaticDir),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	}
	if metrics != nil {
		serverOpts = append(serverOpts, api.WithMetrics(metrics))
	}
	if providers != nil {
		serverOpts = append(serverOpts, api.WithTracing())
	}
	server := api.NewServer(accounts, store, guard, serverOpts...)

	apiServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Ops server: probes and scraping
	opsMux := http.NewServeMux()
	observability.RegisterHealthRoutes(opsMux, observability.NewHealthChecker(store, version))
	if metrics != nil {
		observability.RegisterMetricsEndpoint(opsMux, registry)
	}
	opsServer := &http.Server{
		Addr:        cfg.Server.HealthAddr(),
		Handler:     opsMux,
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	// Registered last so they stop first
	shutdown.Register("ops server", opsServer.Shutdown)
	shutdown.Register("api server", apiServer.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("Starting task list API")
		return serve(apiServer)
	})
	g.Go(func() error {
		logger.WithField("addr", opsServer.Addr).Info("Starting health and metrics server")
		return serve(opsServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		return shutdown.Shutdown()
	})

	return g.Wait()
}

// serve treats a graceful close as a clean exit
func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", srv.Addr, err)
	}
	return nil
}
