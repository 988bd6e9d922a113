// Package config reads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/airdash/airdash/internal/chart"
	"github.com/airdash/airdash/internal/database"
)

// Config holds everything main needs to start the service.
type Config struct {
	Port     string
	Env      string
	LogLevel zerolog.Level

	// DataSource is a file path, an http(s) URL or a PostgreSQL DSN.
	DataSource   string
	DataEncoding string
	DataTable    string
	FetchTimeout time.Duration

	Database database.Config

	OTelEnabled  bool
	OTLPEndpoint string

	ChartWidth  int
	ChartHeight int

	RequireTLS bool
}

// FromEnv builds a Config from environment variables. Unparsable values are
// reported rather than silently replaced.
func FromEnv() (Config, error) {
	var errs []error
	intVar := func(key, def string) int {
		v, err := strconv.Atoi(getEnvOrDefault(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}
	durationVar := func(key, def string) time.Duration {
		v, err := time.ParseDuration(getEnvOrDefault(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}

	level, err := zerolog.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	dataSource := getEnvOrDefault("DATA_SOURCE", "main_data.csv")

	cfg := Config{
		Port:         getEnvOrDefault("APP_PORT", "8080"),
		Env:          getEnvOrDefault("APP_ENV", "development"),
		LogLevel:     level,
		DataSource:   dataSource,
		DataEncoding: getEnvOrDefault("DATA_ENCODING", "utf-8"),
		DataTable:    getEnvOrDefault("DATA_TABLE", "observations"),
		FetchTimeout: durationVar("DATA_FETCH_TIMEOUT", "30s"),
		Database: database.Config{
			DSN:             dataSource,
			MaxOpenConns:    intVar("DB_MAX_OPEN_CONNS", "10"),
			MaxIdleConns:    intVar("DB_MAX_IDLE_CONNS", "2"),
			ConnMaxLifetime: durationVar("DB_CONN_MAX_LIFETIME", "5m"),
		},
		OTelEnabled:  os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ChartWidth:   intVar("CHART_WIDTH", strconv.Itoa(chart.DefaultWidth)),
		ChartHeight:  intVar("CHART_HEIGHT", strconv.Itoa(chart.DefaultHeight)),
		RequireTLS:   os.Getenv("REQUIRE_TLS") == "true",
	}

	if cfg.ChartWidth <= 0 || cfg.ChartWidth > chart.MaxWidth {
		errs = append(errs, fmt.Errorf("CHART_WIDTH: %d outside 1-%d", cfg.ChartWidth, chart.MaxWidth))
	}
	if cfg.ChartHeight <= 0 || cfg.ChartHeight > chart.MaxHeight {
		errs = append(errs, fmt.Errorf("CHART_HEIGHT: %d outside 1-%d", cfg.ChartHeight, chart.MaxHeight))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
