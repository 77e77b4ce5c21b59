package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"lakeweather.bot/internal/adapters/api"
	"lakeweather.bot/internal/adapters/infrastructure"
	"lakeweather.bot/internal/adapters/telegram"
	"lakeweather.bot/internal/config"
	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/ports"
)

type Application struct {
	config *config.Config

	// Use Cases
	forecastUseCase *forecast.UseCase
	locationUseCase *location.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine
	bot        *telegram.BotAdapter
	botDone    chan struct{}

	// Closed once Shutdown has released every resource
	stopped  chan struct{}
	stopOnce sync.Once

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication(cfg *config.Config) (*Application, error) {
	deps, err := NewDependencyContainer(cfg, DependencyOptions{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}

	if cfg.Telegram.Enabled() {
		if err := app.initializeBot(); err != nil {
			_ = deps.Cleanup()
			return nil, fmt.Errorf("initialize telegram bot: %w", err)
		}
	}

	return app, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies.
// The chat transport is not started; tests drive the HTTP router directly.
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config:  cfg,
		deps:    deps,
		ports:   deps.ApplicationPorts(),
		stopped: make(chan struct{}),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	locationUseCase, err := location.NewUseCase(location.UseCaseDependencies{
		Repository: a.ports.LocationRepository,
		Config:     a.ports.ConfigProvider,
		Logger:     a.ports.Logger,
		Metrics:    a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create location use case: %w", err)
	}
	a.locationUseCase = locationUseCase

	forecastUseCase, err := forecast.NewUseCase(forecast.UseCaseDependencies{
		Locations: a.locationUseCase,
		Provider:  a.ports.ForecastProvider,
		Cache:     a.ports.ObservationCache,
		Config:    a.ports.ConfigProvider,
		Logger:    a.ports.Logger,
		Metrics:   a.ports.Metrics,
		Clock:     a.deps.clock,
	})
	if err != nil {
		return fmt.Errorf("create forecast use case: %w", err)
	}
	a.forecastUseCase = forecastUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		CacheMetrics: a.ports.CacheMetrics,
		Locations:    a.locationUseCase,
		Provider:     a.deps.Provider(),
	})

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker: infrastructure.NewDatabaseHealthChecker(a.deps.Database()),
		ProviderChecker: infrastructure.NewForecastProviderHealthChecker(a.deps.Provider()),
		CacheChecker:    infrastructure.NewCacheHealthChecker(a.ports.CacheMetrics, a.deps.CachePinger()),
		ConfigProvider:  a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		ForecastUseCase:     a.forecastUseCase,
		LocationUseCase:     a.locationUseCase,
		MetricsCollector:    metricsCollector,
		SystemHealthChecker: systemHealthChecker,
		Logger:              a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.GetRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) initializeBot() error {
	botAPI, err := telegram.NewBotAPI(
		a.config.Telegram.BotToken,
		a.config.Telegram.PollTimeout,
		a.config.Telegram.Debug,
		a.ports.Logger,
	)
	if err != nil {
		return err
	}

	bot, err := telegram.NewBotAdapter(telegram.BotOptions{
		Sender:          botAPI,
		Updates:         botAPI,
		ForecastUseCase: a.forecastUseCase,
		LocationUseCase: a.locationUseCase,
		Logger:          a.ports.Logger,
		Title:           a.config.Forecast.LocationTitle,
		Timezone:        a.ports.ConfigProvider.GetForecastConfig().Timezone,
		PollTimeout:     a.config.Telegram.PollTimeout,
		RequestTimeout:  time.Duration(a.config.Telegram.RequestTimeout) * time.Second,
	})
	if err != nil {
		return err
	}

	a.bot = bot
	return nil
}

// Start runs the chat bot in the background and serves HTTP. Once the server
// is closed by Shutdown, Start blocks until Shutdown has finished cleaning up.
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if a.bot != nil {
		a.botDone = make(chan struct{})
		go func() {
			defer close(a.botDone)
			if err := a.bot.Run(ctx); err != nil {
				slog.Error("Telegram bot stopped with error", "error", err)
			}
		}()
	}

	slog.Info("Starting HTTP server", "addr", a.httpServer.Addr)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	<-a.stopped
	return nil
}

// Shutdown stops the HTTP server, waits for the bot to drain and releases resources.
// Resources are released even when the server or the bot miss the deadline.
// The caller cancels the context passed to Start before calling Shutdown.
func (a *Application) Shutdown(ctx context.Context) error {
	defer a.stopOnce.Do(func() { close(a.stopped) })

	slog.Info("Shutting down application...")

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if a.botDone != nil {
		select {
		case <-a.botDone:
		case <-ctx.Done():
			slog.Warn("Telegram bot did not stop before the shutdown deadline")
		}
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetForecastUseCase returns the forecast use case for testing
func (a *Application) GetForecastUseCase() *forecast.UseCase {
	return a.forecastUseCase
}

// GetLocationUseCase returns the location use case for testing
func (a *Application) GetLocationUseCase() *location.UseCase {
	return a.locationUseCase
}
