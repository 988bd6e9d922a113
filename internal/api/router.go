// Package api provides the HTTP API and page of the air quality dashboard.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/api/handler"
	"github.com/airdash/airdash/internal/api/middleware"
	"github.com/airdash/airdash/internal/chart"
	"github.com/airdash/airdash/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger
	Metrics   *middleware.Metrics

	// Service computes series from the loaded dataset. Required.
	Service *airquality.Service

	// Registry reports remote upstreams on the status endpoint. Optional.
	Registry *resilience.Registry

	// RequireTLS rejects plain HTTP requests forwarded by a proxy.
	RequireTLS bool

	// ChartOptions holds the default PNG size.
	ChartOptions chart.Options
}

// NewRouter creates a new chi router with all routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID) // Generate/propagate request ID first
	r.Use(middleware.Tracing)   // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type unless a handler sets its own

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Service, cfg.Registry)
	metadataHandler := handler.NewMetadataHandler(cfg.Service)
	seriesHandler := handler.NewSeriesHandler(cfg.Service, cfg.ChartOptions, cfg.Logger)
	pageHandler := handler.NewPageHandler(cfg.Service, cfg.Logger)

	// Rendering images and workbooks costs far more than JSON
	renderRateLimit := middleware.RateLimitByIP(middleware.RenderRateLimit)     // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	r.With(standardRateLimit).Get("/", pageHandler.Index)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/dashboard", metadataHandler.GetDashboard)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		r.Route("/series/{view}", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", seriesHandler.GetSeries)
			r.With(renderRateLimit).Get("/export", seriesHandler.Export)
		})

		r.With(renderRateLimit).Get("/charts/{view}", seriesHandler.GetChart)
	})

	return r
}
