package forecast

import (
	"time"

	"lakeweather.bot/internal/core/location"
)

// MaxForecastDays is the provider's forecast horizon
const MaxForecastDays = 5

// Observation is one forecast time slot reported by the provider
type Observation struct {
	Timestamp            time.Time
	TemperatureC         float64
	HumidityPct          int
	PressureHPa          int
	ConditionID          int
	ConditionMain        string
	ConditionDescription string
	WindSpeedMs          float64
	WindDegrees          float64
}

// WindDirection is one of the eight compass octants
type WindDirection int

const (
	WindNorth WindDirection = iota
	WindNorthEast
	WindEast
	WindSouthEast
	WindSouth
	WindSouthWest
	WindWest
	WindNorthWest
)

// String returns the English compass abbreviation
func (d WindDirection) String() string {
	switch d {
	case WindNorth:
		return "N"
	case WindNorthEast:
		return "NE"
	case WindEast:
		return "E"
	case WindSouthEast:
		return "SE"
	case WindSouth:
		return "S"
	case WindSouthWest:
		return "SW"
	case WindWest:
		return "W"
	case WindNorthWest:
		return "NW"
	default:
		return "unknown"
	}
}

// DaySummary is the aggregate of all observations sharing a calendar date.
// Description, ConditionID, HumidityPct and PressureHPa come from the day's
// earliest observation, DominantCondition from the whole day.
type DaySummary struct {
	Date              time.Time
	DayName           string
	MinTempC          float64
	MaxTempC          float64
	AvgTempC          float64
	AvgWindSpeedMs    float64
	WindDirection     WindDirection
	DominantCondition string
	Description       string
	ConditionID       int
	HumidityPct       int
	PressureHPa       int
}

// DayForecast is a day summary decorated for display
type DayForecast struct {
	DaySummary
	Icon      string
	WindLabel string
}

// Forecast is the result of a forecast request
type Forecast struct {
	Coordinate  location.Coordinate
	Days        []DayForecast
	GeneratedAt time.Time
}
