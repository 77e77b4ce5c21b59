package app

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"lakeweather.bot/internal/adapters/database"
	"lakeweather.bot/internal/adapters/external"
	"lakeweather.bot/internal/adapters/infrastructure"
	"lakeweather.bot/internal/config"
	"lakeweather.bot/internal/ports"
)

type DependencyContainer struct {
	config     *config.Config
	registerer prometheus.Registerer
	clock      clockwork.Clock

	db         *gorm.DB
	provider   *external.OpenWeatherMapProviderAdapter
	cache      external.CacheProvider
	fileLogger *infrastructure.FileLoggerAdapter
	ports      *ports.ApplicationPorts
}

// DependencyOptions overrides process-wide defaults, mainly for tests
type DependencyOptions struct {
	// Registerer receives the Prometheus collectors; nil means the default registry
	Registerer prometheus.Registerer
	// Client replaces the provider's HTTP client
	Client external.HTTPClient
	Clock  clockwork.Clock
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	container := &DependencyContainer{
		config:     cfg,
		registerer: opts.Registerer,
		clock:      clock,
	}

	if err := container.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializePorts(opts.Client); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...", "driver", c.config.Database.Driver.String())

	db, err := database.Open(c.config.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := c.runMigrations(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return fmt.Errorf("run migrations: %w", err)
	}

	c.db = db
	slog.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) runMigrations(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	if err := database.Migrate(db); err != nil {
		return err
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

func (c *DependencyContainer) initializePorts(client external.HTTPClient) error {
	slog.Info("Initializing ports...")

	logger := infrastructure.NewSlogLoggerAdapter(slog.Default())

	configProvider, err := infrastructure.NewConfigProviderAdapter(c.config)
	if err != nil {
		return fmt.Errorf("create config provider: %w", err)
	}

	metrics := infrastructure.NewPrometheusMetrics(c.registerer)

	locationRepo := database.NewLocationRepositoryAdapter(c.db)

	// Provider traffic goes to its own file when enabled, otherwise to the process log
	var providerLogger ports.Logger = logger
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(infrastructure.FileLoggerOptions{
			Path:     c.config.Weather.LogFilePath,
			MinLevel: slog.LevelInfo,
			Clock:    c.clock,
		})
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			providerLogger = fileLogger
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	c.provider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.OpenWeatherMapKey,
		BaseURL: c.config.Weather.OpenWeatherMapBaseURL,
		Lang:    c.config.Weather.Lang,
		Timeout: c.config.Weather.Timeout(),
		Client:  client,
		Logger:  logger,
	})

	var forecastProvider ports.ForecastProvider = external.NewForecastProviderMetricsDecorator(c.provider, metrics)
	if c.config.Weather.EnableLogging {
		forecastProvider = external.NewForecastProviderLoggingDecorator(forecastProvider, providerLogger)
		slog.Info("Forecast provider logging enabled")
	}

	cacheFactory := external.NewCacheProviderFactory(c.clock)
	genericCacheProvider, err := cacheFactory.CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = genericCacheProvider

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	c.ports = &ports.ApplicationPorts{
		ForecastProvider: forecastProvider,
		ObservationCache: external.NewObservationCacheAdapter(genericCacheProvider),

		LocationRepository: locationRepo,

		CacheMetrics: genericCacheProvider,

		ConfigProvider: configProvider,
		Logger:         logger,
		Metrics:        metrics,
		Database:       c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Provider returns the undecorated provider, which exposes its circuit state
func (c *DependencyContainer) Provider() *external.OpenWeatherMapProviderAdapter {
	return c.provider
}

// CachePinger returns the remote cache for health checks, or nil for in-process caches
func (c *DependencyContainer) CachePinger() infrastructure.Pinger {
	if pinger, ok := c.cache.(infrastructure.Pinger); ok {
		return pinger
	}
	return nil
}

// Cleanup releases the database, the cache connection and the provider log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if closer, ok := c.cache.(interface{ Close() error }); ok {
		keep(closer.Close())
	}
	if c.fileLogger != nil {
		keep(c.fileLogger.Close())
	}
	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			keep(db.Close())
		}
	}
	return firstErr
}
