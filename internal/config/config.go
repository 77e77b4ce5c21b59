package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"lakeweather.bot/pkg/errors"
	"lakeweather.bot/pkg/validation"
)

const (
	maxRedisDB          = 15
	maxCacheTTLMinutes  = 1440
	maxPortNumber       = 65535
	maxTimeoutSeconds   = 120
	providerHorizonDays = 5
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Forecast ForecastConfig `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
	Telegram TelegramConfig `split_words:"true"`
	LogLevel string         `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseDriver selects the gorm dialector used for the location store
type DatabaseDriver int

const (
	DatabaseDriverUnknown DatabaseDriver = iota
	DatabaseDriverSQLite
	DatabaseDriverPostgres
)

// String returns the string representation of the database driver
func (d DatabaseDriver) String() string {
	switch d {
	case DatabaseDriverSQLite:
		return "sqlite"
	case DatabaseDriverPostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// IsValid checks if the database driver is supported
func (d DatabaseDriver) IsValid() bool {
	return d == DatabaseDriverSQLite || d == DatabaseDriverPostgres
}

// DatabaseDriverFromString converts string to DatabaseDriver enum
func DatabaseDriverFromString(s string) DatabaseDriver {
	switch strings.ToLower(s) {
	case "sqlite":
		return DatabaseDriverSQLite
	case "postgres":
		return DatabaseDriverPostgres
	default:
		return DatabaseDriverUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (d *DatabaseDriver) UnmarshalText(text []byte) error {
	*d = DatabaseDriverFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (d DatabaseDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type DatabaseConfig struct {
	Driver     DatabaseDriver `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string         `envconfig:"DB_SQLITE_PATH" default:"usersdb.sqlite"`
	Host       string         `envconfig:"DB_HOST" default:"localhost"`
	Port       int            `envconfig:"DB_PORT" default:"5432"`
	User       string         `envconfig:"DB_USER" default:"postgres"`
	Password   string         `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string         `envconfig:"DB_NAME" default:"lakeweather"`
	SSLMode    string         `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	OpenWeatherMapKey     string `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	Lang                  string `envconfig:"WEATHER_LANG" default:"ru"`
	TimeoutSeconds        int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
	EnableCache           bool   `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	CacheTTLMinutes       int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"10"`
	LogFilePath           string `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_providers.log"`
}

// Timeout returns the per-request provider timeout
func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type ForecastConfig struct {
	DefaultLatitude  float64 `envconfig:"FORECAST_DEFAULT_LAT" default:"61.111969"`
	DefaultLongitude float64 `envconfig:"FORECAST_DEFAULT_LON" default:"30.339632"`
	DefaultDays      int     `envconfig:"FORECAST_DEFAULT_DAYS" default:"3"`
	MaxDays          int     `envconfig:"FORECAST_MAX_DAYS" default:"5"`
	Timezone         string  `envconfig:"FORECAST_TIMEZONE" default:"UTC"`
	CircularWindMean bool    `envconfig:"FORECAST_CIRCULAR_WIND_MEAN" default:"false"`
	LocationTitle    string  `envconfig:"FORECAST_LOCATION_TITLE" default:"Погода на Ладожском озере"`
}

// Location resolves the configured bucketing timezone
func (f ForecastConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unknown FORECAST_TIMEZONE %q", f.Timezone), err)
	}
	return loc, nil
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type TelegramConfig struct {
	BotToken       string `envconfig:"TELEGRAM_BOT_TOKEN"`
	PollTimeout    int    `envconfig:"TELEGRAM_POLL_TIMEOUT" default:"60"`
	Debug          bool   `envconfig:"TELEGRAM_DEBUG" default:"false"`
	RequestTimeout int    `envconfig:"TELEGRAM_REQUEST_TIMEOUT" default:"30"`
}

// Enabled reports whether the chat transport should be started
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != ""
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Telegram.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if !d.Driver.IsValid() {
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}

	if d.Driver == DatabaseDriverSQLite {
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER is sqlite", nil)
		}
		return nil
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if w.OpenWeatherMapKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY must be configured", nil)
	}
	if !strings.HasPrefix(w.OpenWeatherMapBaseURL, "http://") && !strings.HasPrefix(w.OpenWeatherMapBaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.TimeoutSeconds < 1 || w.TimeoutSeconds > maxTimeoutSeconds {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	return nil
}

func (f *ForecastConfig) Validate() error {
	if !validation.IsValidLatitude(f.DefaultLatitude) {
		return errors.NewConfigurationError("FORECAST_DEFAULT_LAT must be between -90 and 90", nil)
	}
	if !validation.IsValidLongitude(f.DefaultLongitude) {
		return errors.NewConfigurationError("FORECAST_DEFAULT_LON must be between -180 and 180", nil)
	}
	if f.MaxDays < 1 || f.MaxDays > providerHorizonDays {
		return errors.NewConfigurationError("FORECAST_MAX_DAYS must be between 1 and 5", nil)
	}
	if !validation.IsValidForecastDays(f.DefaultDays, f.MaxDays) {
		return errors.NewConfigurationError("FORECAST_DEFAULT_DAYS must be between 1 and FORECAST_MAX_DAYS", nil)
	}
	if _, err := f.Location(); err != nil {
		return err
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (t *TelegramConfig) Validate() error {
	if !t.Enabled() {
		return nil
	}
	if t.PollTimeout < 1 {
		return errors.NewConfigurationError("TELEGRAM_POLL_TIMEOUT must be at least 1 second", nil)
	}
	if t.RequestTimeout < 1 {
		return errors.NewConfigurationError("TELEGRAM_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}
