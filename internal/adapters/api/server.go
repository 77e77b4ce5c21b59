// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	config           ServerConfig
	forecastUseCase  ForecastUseCase
	locationUseCase  LocationUseCase
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	logger           ports.Logger
}

// Use case interfaces that the HTTP adapter depends on
type ForecastUseCase interface {
	GetForecast(ctx context.Context, userID int64, days int) (*forecast.Forecast, error)
	GetForecastAt(ctx context.Context, coord location.Coordinate, days int) (*forecast.Forecast, error)
	DefaultDays() int
}

type LocationUseCase interface {
	Get(ctx context.Context, userID int64) (location.Coordinate, error)
	Upsert(ctx context.Context, userID int64, coord location.Coordinate) error
	Default() location.Coordinate
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	ForecastUseCase     ForecastUseCase
	LocationUseCase     LocationUseCase
	MetricsCollector    MetricsCollector
	SystemHealthChecker ports.SystemHealthChecker
	Logger              ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		forecastUseCase:  opts.ForecastUseCase,
		locationUseCase:  opts.LocationUseCase,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.SystemHealthChecker,
		logger:           opts.Logger,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.ForecastUseCase == nil {
		return errors.NewValidationError("forecast use case is required")
	}
	if opts.LocationUseCase == nil {
		return errors.NewValidationError("location use case is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/forecast", s.getForecast)
		api.GET("/users/:id/location", s.getLocation)
		api.PUT("/users/:id/location", s.putLocation)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// requestID propagates the caller's request id or assigns a fresh one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString("requestID")
}
