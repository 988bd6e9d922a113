// Package main provides the entrypoint for the air quality dashboard server.
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

	"github.com/rs/zerolog"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/airquality/prsa"
	"github.com/airdash/airdash/internal/api"
	"github.com/airdash/airdash/internal/api/middleware"
	"github.com/airdash/airdash/internal/chart"
	"github.com/airdash/airdash/internal/config"
	"github.com/airdash/airdash/internal/database"
	"github.com/airdash/airdash/internal/provider/resilience"
	"github.com/airdash/airdash/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "airdash"

func main() {
	cfg, err := config.FromEnv()
	log := newLogger(os.Stdout, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	// run returns instead of exiting so its deferred telemetry shutdown
	// flushes whatever was recorded, failed loads included.
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

// newLogger builds the service logger: JSON in production, human-readable
// console output everywhere else.
func newLogger(out io.Writer, cfg config.Config) zerolog.Logger {
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()
}

func run(cfg config.Config, log zerolog.Logger) error {
	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("starting air quality dashboard")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTelEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics(tp.Meter)
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	loadMetrics, err := telemetry.NewLoadMetrics(tp.Meter)
	if err != nil {
		return fmt.Errorf("initialize load metrics: %w", err)
	}

	// Load the dataset once; it is read-only for the lifetime of the process
	registry := resilience.NewRegistry()
	source, release, err := openSource(ctx, cfg, registry, log)
	if err != nil {
		return fmt.Errorf("open data source: %w", err)
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.FetchTimeout+time.Minute)
	dataset, err := loadDataset(loadCtx, source, release, loadMetrics)
	cancelLoad()
	if err != nil {
		return err
	}

	bounds := dataset.Bounds()
	log.Info().
		Str("source", dataset.Source()).
		Int("observations", dataset.Len()).
		Str("bounds", bounds.String()).
		Msg("dataset loaded")

	service := airquality.NewService(airquality.ServiceConfig{
		Dataset: dataset,
		Logger:  log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:    Version,
		BuildTime:  BuildTime,
		Logger:     log,
		Metrics:    metrics,
		Service:    service,
		Registry:   registry,
		RequireTLS: cfg.RequireTLS,
		ChartOptions: chart.Options{
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
		},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// loadDataset reads the whole table from source, releases the source and
// records the attempt. Nothing reads the source after this.
func loadDataset(ctx context.Context, source airquality.Source, release func(), metrics *telemetry.LoadMetrics) (*airquality.Dataset, error) {
	start := time.Now()
	dataset, err := source.Load(ctx)
	release()

	rows := 0
	if dataset != nil {
		rows = dataset.Len()
	}
	metrics.Record(ctx, source.Name(), rows, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", source.Name(), err)
	}
	return dataset, nil
}

// openSource picks the dataset source for the configured location. The
// returned func releases whatever the source holds open.
func openSource(ctx context.Context, cfg config.Config, registry *resilience.Registry, log zerolog.Logger) (airquality.Source, func(), error) {
	if database.IsDSN(cfg.DataSource) {
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Info().
			Str("dsn", database.Redact(cfg.DataSource)).
			Str("table", cfg.DataTable).
			Msg("database connected")
		return airquality.NewPostgresSource(pool, cfg.DataTable), pool.Close, nil
	}

	return prsa.NewSource(prsa.Config{
		Location: cfg.DataSource,
		Encoding: cfg.DataEncoding,
		Timeout:  cfg.FetchTimeout,
		Registry: registry,
	}), func() {}, nil
}
