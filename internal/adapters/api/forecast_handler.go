package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// ForecastQuery selects the forecast location: explicit lat/lon, a user's stored
// location, or the default location when neither is given.
type ForecastQuery struct {
	Latitude  *float64 `form:"lat" binding:"omitempty,latitude"`
	Longitude *float64 `form:"lon" binding:"omitempty,longitude"`
	UserID    *int64   `form:"user_id"`
	Days      *int     `form:"days"`
}

// ForecastResponse represents the HTTP response for a multi-day forecast
type ForecastResponse struct {
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Days        []DayResponse `json:"days"`
}

type DayResponse struct {
	Date              string  `json:"date"`
	DayName           string  `json:"dayName"`
	Icon              string  `json:"icon"`
	MinTempC          float64 `json:"minTempC"`
	MaxTempC          float64 `json:"maxTempC"`
	AvgTempC          float64 `json:"avgTempC"`
	Description       string  `json:"description"`
	DominantCondition string  `json:"dominantCondition"`
	ConditionID       int     `json:"conditionId"`
	WindSpeedMs       float64 `json:"windSpeedMs"`
	WindDirection     string  `json:"windDirection"`
	WindLabel         string  `json:"windLabel"`
	HumidityPct       int     `json:"humidityPct"`
	PressureHPa       int     `json:"pressureHPa"`
}

// getForecast handles GET /api/forecast requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	var query ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("invalid forecast query: "+err.Error()))
		return
	}

	days := s.forecastUseCase.DefaultDays()
	if query.Days != nil {
		days = *query.Days
	}

	ctx := c.Request.Context()
	var (
		result *forecast.Forecast
		err    error
	)

	switch {
	case query.Latitude != nil || query.Longitude != nil:
		if query.Latitude == nil || query.Longitude == nil {
			s.handleError(c, errors.NewValidationError("lat and lon must be given together"))
			return
		}
		result, err = s.forecastUseCase.GetForecastAt(ctx, location.Coordinate{
			Latitude:  *query.Latitude,
			Longitude: *query.Longitude,
		}, days)
	case query.UserID != nil:
		result, err = s.forecastUseCase.GetForecast(ctx, *query.UserID, days)
	default:
		result, err = s.forecastUseCase.GetForecastAt(ctx, s.locationUseCase.Default(), days)
	}

	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Debug("Forecast served",
		ports.F("requestID", requestIDFrom(c)),
		ports.F("coordinate", result.Coordinate.Short()),
		ports.F("days", len(result.Days)))
	c.JSON(http.StatusOK, newForecastResponse(result))
}

func newForecastResponse(f *forecast.Forecast) ForecastResponse {
	response := ForecastResponse{
		Latitude:    f.Coordinate.Latitude,
		Longitude:   f.Coordinate.Longitude,
		GeneratedAt: f.GeneratedAt,
		Days:        make([]DayResponse, 0, len(f.Days)),
	}

	for _, day := range f.Days {
		response.Days = append(response.Days, DayResponse{
			Date:              day.Date.Format("2006-01-02"),
			DayName:           day.DayName,
			Icon:              day.Icon,
			MinTempC:          day.MinTempC,
			MaxTempC:          day.MaxTempC,
			AvgTempC:          day.AvgTempC,
			Description:       day.Description,
			DominantCondition: day.DominantCondition,
			ConditionID:       day.ConditionID,
			WindSpeedMs:       day.AvgWindSpeedMs,
			WindDirection:     day.WindDirection.String(),
			WindLabel:         day.WindLabel,
			HumidityPct:       day.HumidityPct,
			PressureHPa:       day.PressureHPa,
		})
	}
	return response
}
