package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/mocks"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

var (
	defaultCoords = ports.Coordinates{Latitude: 61.111969, Longitude: 30.339632}
	fixedNow      = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
)

type stubHealthChecker struct {
	results map[string]ports.HealthStatus
}

func (s stubHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	return s.results
}

type stubMetricsCollector struct {
	metrics map[string]interface{}
	err     error
}

func (s stubMetricsCollector) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	return s.metrics, s.err
}

type testServer struct {
	router   *gin.Engine
	provider *mocks.ForecastProvider
	repo     *mocks.LocationRepository
}

func providerSlots() []ports.ObservationData {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	slots := make([]ports.ObservationData, 0, 40)
	for i := 0; i < 40; i++ {
		slots = append(slots, ports.ObservationData{
			Timestamp:            base.Add(time.Duration(i) * 3 * time.Hour),
			TemperatureC:         float64(i%8) - 1.5,
			HumidityPct:          81,
			PressureHPa:          1009,
			ConditionID:          500,
			ConditionMain:        "Rain",
			ConditionDescription: "небольшой дождь",
			WindSpeedMs:          4,
			WindDegrees:          180,
		})
	}
	return slots
}

func setupTestServer(t *testing.T, health ports.SystemHealthChecker, collector MetricsCollector) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config := mocks.NewConfigProvider(t)
	config.EXPECT().GetForecastConfig().Return(ports.ForecastConfig{
		DefaultLocation: defaultCoords,
		DefaultDays:     3,
		MaxDays:         5,
		Timezone:        time.UTC,
	}).Maybe()
	config.EXPECT().GetWeatherConfig().Return(ports.WeatherConfig{}).Maybe()

	metrics := mocks.NewMetricsRecorder(t)
	metrics.EXPECT().RecordForecastRequest(mock.Anything).Maybe()
	metrics.EXPECT().RecordLocationUpsert(mock.Anything).Maybe()

	logger := mocks.NewPermissiveLogger(t)
	repo := mocks.NewLocationRepository(t)
	provider := mocks.NewForecastProvider(t)
	provider.EXPECT().GetProviderName().Return("openweathermap").Maybe()

	locationUseCase, err := location.NewUseCase(location.UseCaseDependencies{
		Repository: repo,
		Config:     config,
		Logger:     logger,
		Metrics:    metrics,
	})
	require.NoError(t, err)

	forecastUseCase, err := forecast.NewUseCase(forecast.UseCaseDependencies{
		Locations: locationUseCase,
		Provider:  provider,
		Config:    config,
		Logger:    logger,
		Metrics:   metrics,
		Clock:     clockwork.NewFakeClockAt(fixedNow),
	})
	require.NoError(t, err)

	if health == nil {
		health = stubHealthChecker{results: map[string]ports.HealthStatus{}}
	}
	if collector == nil {
		collector = stubMetricsCollector{metrics: map[string]interface{}{}}
	}

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:              ServerConfig{Port: 8080},
		ForecastUseCase:     forecastUseCase,
		LocationUseCase:     locationUseCase,
		MetricsCollector:    collector,
		SystemHealthChecker: health,
		Logger:              logger,
	})
	require.NoError(t, err)

	return testServer{router: server.GetRouter(), provider: provider, repo: repo}
}

func (s testServer) do(method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestGetForecast_ExplicitCoordinates(t *testing.T) {
	s := setupTestServer(t, nil, nil)
	s.provider.EXPECT().
		GetForecast(mock.Anything, ports.Coordinates{Latitude: 59.93, Longitude: 30.31}).
		Return(providerSlots(), nil).Once()

	w := s.do(http.MethodGet, "/api/forecast?lat=59.93&lon=30.31&days=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	var response ForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 59.93, response.Latitude)
	assert.Equal(t, fixedNow, response.GeneratedAt)
	require.Len(t, response.Days, 2)

	day := response.Days[0]
	assert.Equal(t, "2024-06-01", day.Date)
	assert.Equal(t, "Суббота", day.DayName)
	assert.Equal(t, "🌧️", day.Icon)
	assert.Equal(t, -1.5, day.MinTempC)
	assert.Equal(t, 5.5, day.MaxTempC)
	assert.Equal(t, "небольшой дождь", day.Description)
	assert.Equal(t, "Rain", day.DominantCondition)
	assert.Equal(t, "S", day.WindDirection)
	assert.Equal(t, "Ю", day.WindLabel)
	assert.Equal(t, 81, day.HumidityPct)
	assert.Equal(t, 1009, day.PressureHPa)
	assert.Equal(t, "2024-06-02", response.Days[1].Date)
}

func TestGetForecast_StoredUserLocation(t *testing.T) {
	s := setupTestServer(t, nil, nil)
	s.repo.EXPECT().FindByUserID(mock.Anything, int64(42)).
		Return(&ports.LocationData{UserID: 42, Latitude: 60.5, Longitude: 31.25}, nil).Once()
	s.provider.EXPECT().
		GetForecast(mock.Anything, ports.Coordinates{Latitude: 60.5, Longitude: 31.25}).
		Return(providerSlots(), nil).Once()

	w := s.do(http.MethodGet, "/api/forecast?user_id=42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var response ForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 60.5, response.Latitude)
	assert.Len(t, response.Days, 3)
}

func TestGetForecast_DefaultLocation(t *testing.T) {
	s := setupTestServer(t, nil, nil)
	s.provider.EXPECT().GetForecast(mock.Anything, defaultCoords).Return(providerSlots(), nil).Once()

	w := s.do(http.MethodGet, "/api/forecast", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var response ForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, defaultCoords.Latitude, response.Latitude)
	assert.Len(t, response.Days, 3)
}

func TestGetForecast_RejectedWithoutUpstreamCall(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"DaysBeyondHorizon", "/api/forecast?days=7"},
		{"ZeroDays", "/api/forecast?days=0"},
		{"NonNumericDays", "/api/forecast?days=three"},
		{"LatitudeOutOfRange", "/api/forecast?lat=95&lon=30"},
		{"LatitudeWithoutLongitude", "/api/forecast?lat=61.1"},
		{"UserWithTooManyDays", "/api/forecast?user_id=42&days=6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t, nil, nil)

			w := s.do(http.MethodGet, tt.target, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			s.provider.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything)
			s.repo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
		})
	}
}

func TestGetForecast_ProviderUnavailable(t *testing.T) {
	s := setupTestServer(t, nil, nil)
	s.provider.EXPECT().GetForecast(mock.Anything, defaultCoords).
		Return(nil, fmt.Errorf("dial tcp: connection refused")).Once()

	w := s.do(http.MethodGet, "/api/forecast?days=1", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Forecast provider unavailable")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetForecast_StorageFailure(t *testing.T) {
	s := setupTestServer(t, nil, nil)
	s.repo.EXPECT().FindByUserID(mock.Anything, int64(7)).
		Return(nil, errors.NewStorageError("database is locked", nil)).Once()

	w := s.do(http.MethodGet, "/api/forecast?user_id=7", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	s.provider.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything)
}

func TestGetLocation(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)
		s.repo.EXPECT().FindByUserID(mock.Anything, int64(42)).
			Return(&ports.LocationData{UserID: 42, Latitude: 60.123456, Longitude: 30.654321}, nil).Once()

		w := s.do(http.MethodGet, "/api/users/42/location", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response LocationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, LocationResponse{UserID: 42, Latitude: 60.123456, Longitude: 30.654321}, response)
	})

	t.Run("FallsBackToDefault", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)
		s.repo.EXPECT().FindByUserID(mock.Anything, int64(5)).
			Return(nil, errors.NewNotFoundError("location not found")).Once()

		w := s.do(http.MethodGet, "/api/users/5/location", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response LocationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, defaultCoords.Latitude, response.Latitude)
		assert.Equal(t, defaultCoords.Longitude, response.Longitude)
	})

	t.Run("BadUserID", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)

		w := s.do(http.MethodGet, "/api/users/abc/location", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPutLocation(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)
		s.repo.EXPECT().Upsert(mock.Anything, mock.MatchedBy(func(loc *ports.LocationData) bool {
			return loc.UserID == 42 && loc.Latitude == 61.5 && loc.Longitude == 30.25
		})).Return(nil).Once()

		w := s.do(http.MethodPut, "/api/users/42/location", []byte(`{"latitude":61.5,"longitude":30.25}`))

		require.Equal(t, http.StatusOK, w.Code)
		var response LocationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, LocationResponse{UserID: 42, Latitude: 61.5, Longitude: 30.25}, response)
	})

	t.Run("ZeroCoordinatesAccepted", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)
		s.repo.EXPECT().Upsert(mock.Anything, mock.Anything).Return(nil).Once()

		w := s.do(http.MethodPut, "/api/users/1/location", []byte(`{"latitude":0,"longitude":0}`))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name string
		body string
	}{
		{"MissingLongitude", `{"latitude":61.5}`},
		{"Malformed", `{"latitude":`},
		{"OutOfRange", `{"latitude":91,"longitude":30}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t, nil, nil)

			w := s.do(http.MethodPut, "/api/users/42/location", []byte(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			s.repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}

	t.Run("StorageFailure", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)
		s.repo.EXPECT().Upsert(mock.Anything, mock.Anything).
			Return(errors.NewStorageError("disk full", nil)).Once()

		w := s.do(http.MethodPut, "/api/users/42/location", []byte(`{"latitude":61.5,"longitude":30.25}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestGetHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		s := setupTestServer(t, stubHealthChecker{results: map[string]ports.HealthStatus{
			"database":         {Component: "database", Status: "healthy"},
			"forecastProvider": {Component: "forecastProvider", Status: "degraded"},
		}}, nil)

		w := s.do(http.MethodGet, "/api/health", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Len(t, response.Components, 2)
	})

	t.Run("Unhealthy", func(t *testing.T) {
		s := setupTestServer(t, stubHealthChecker{results: map[string]ports.HealthStatus{
			"database": {Component: "database", Status: "unhealthy", Error: "closed"},
		}}, nil)

		w := s.do(http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})
}

func TestGetMetrics(t *testing.T) {
	t.Run("Snapshot", func(t *testing.T) {
		s := setupTestServer(t, nil, stubMetricsCollector{metrics: map[string]interface{}{
			"locations": map[string]interface{}{"stored": 3},
		}})

		w := s.do(http.MethodGet, "/api/metrics", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"locations":{"stored":3}}`, w.Body.String())
	})

	t.Run("CollectorFailure", func(t *testing.T) {
		s := setupTestServer(t, nil, stubMetricsCollector{err: errors.NewStorageError("count failed", nil)})

		w := s.do(http.MethodGet, "/api/metrics", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Prometheus", func(t *testing.T) {
		s := setupTestServer(t, nil, nil)

		w := s.do(http.MethodGet, "/metrics", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
	})
}

func TestRequestID_Propagated(t *testing.T) {
	s := setupTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestServerOptions_Validate(t *testing.T) {
	valid := func() ServerOptions {
		return ServerOptions{
			ForecastUseCase:     &forecast.UseCase{},
			LocationUseCase:     &location.UseCase{},
			MetricsCollector:    stubMetricsCollector{},
			SystemHealthChecker: stubHealthChecker{},
			Logger:              mocks.NewLogger(t),
		}
	}

	tests := []struct {
		name    string
		mutate  func(o *ServerOptions)
		wantErr string
	}{
		{"Valid", func(o *ServerOptions) {}, ""},
		{"NoForecast", func(o *ServerOptions) { o.ForecastUseCase = nil }, "forecast use case is required"},
		{"NoLocation", func(o *ServerOptions) { o.LocationUseCase = nil }, "location use case is required"},
		{"NoCollector", func(o *ServerOptions) { o.MetricsCollector = nil }, "metrics collector is required"},
		{"NoHealth", func(o *ServerOptions) { o.SystemHealthChecker = nil }, "system health checker is required"},
		{"NoLogger", func(o *ServerOptions) { o.Logger = nil }, "logger is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
