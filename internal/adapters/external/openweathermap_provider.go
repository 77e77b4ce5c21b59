// Package external provides adapters for external services
// These adapters implement ports for the forecast provider and caches.
package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

const (
	defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultProviderTimeout       = 10 * time.Second
	defaultBreakerThreshold      = 5
	defaultBreakerCooldown       = 30 * time.Second
	maxResponseBytes             = 4 << 20
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements ForecastProvider port for the OpenWeatherMap 5 day / 3 hour forecast
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	lang    string
	timeout time.Duration
	client  HTTPClient
	circuit *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Lang    string
	Timeout time.Duration
	// BreakerThreshold is the number of consecutive failures that opens the circuit
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
	Client           HTTPClient
	Logger           ports.Logger
}

// OpenWeatherMapForecastResponse represents the response from the /forecast endpoint
type OpenWeatherMapForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
			Pressure int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
	} `json:"list"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	threshold := params.BreakerThreshold
	if threshold == 0 {
		threshold = defaultBreakerThreshold
	}
	cooldown := params.BreakerCooldown
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	logger := params.Logger

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Circuit breaker state changed",
					ports.F("breaker", name),
					ports.F("from", from.String()),
					ports.F("to", to.String()))
			}
		},
	})

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		lang:    params.Lang,
		timeout: timeout,
		client:  client,
		circuit: cb,
		logger:  logger,
	}
}

// GetForecast retrieves the 3-hour forecast slots for the next five days
func (p *OpenWeatherMapProviderAdapter) GetForecast(ctx context.Context, coords ports.Coordinates) ([]ports.ObservationData, error) {
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("OpenWeatherMap API key is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result, err := p.circuit.Execute(func() (interface{}, error) {
		return p.fetch(ctx, coords)
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewProviderUnavailableError("OpenWeatherMap circuit is open", err)
		}
		if errors.IsProviderUnavailableError(err) {
			return nil, err
		}
		return nil, errors.NewProviderUnavailableError("failed to call OpenWeatherMap", err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.NewProviderUnavailableError("unexpected result type from circuit breaker", nil)
	}

	return p.parse(body)
}

func (p *OpenWeatherMapProviderAdapter) fetch(ctx context.Context, coords ports.Coordinates) ([]byte, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	if p.lang != "" {
		values.Set("lang", p.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/forecast?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewProviderUnavailableError(fmt.Sprintf("OpenWeatherMap returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (p *OpenWeatherMapProviderAdapter) parse(body []byte) ([]ports.ObservationData, error) {
	var apiResp OpenWeatherMapForecastResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, errors.NewProviderUnavailableError("failed to decode OpenWeatherMap response", err)
	}
	if apiResp.List == nil {
		return nil, errors.NewProviderUnavailableError("OpenWeatherMap response has no forecast list", nil)
	}

	observations := make([]ports.ObservationData, 0, len(apiResp.List))
	for i, item := range apiResp.List {
		if len(item.Weather) == 0 {
			return nil, errors.NewProviderUnavailableError(fmt.Sprintf("OpenWeatherMap slot %d has no condition", i), nil)
		}
		condition := item.Weather[0]
		observations = append(observations, ports.ObservationData{
			Timestamp:            time.Unix(item.Dt, 0).UTC(),
			TemperatureC:         item.Main.Temp,
			HumidityPct:          item.Main.Humidity,
			PressureHPa:          item.Main.Pressure,
			ConditionID:          condition.ID,
			ConditionMain:        condition.Main,
			ConditionDescription: condition.Description,
			WindSpeedMs:          item.Wind.Speed,
			WindDegrees:          item.Wind.Deg,
		})
	}

	return observations, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

// CircuitState reports the breaker state for health checks
func (p *OpenWeatherMapProviderAdapter) CircuitState() string {
	return p.circuit.State().String()
}
