package forecast

import (
	"math"
	"sort"
	"time"

	"lakeweather.bot/pkg/errors"
)

// Aggregator reduces provider time slots into one summary per calendar date
type Aggregator struct {
	zone         *time.Location
	circularMean bool
}

// AggregatorOption configures an Aggregator
type AggregatorOption func(*Aggregator)

// WithTimezone sets the zone whose calendar dates define the day buckets
func WithTimezone(zone *time.Location) AggregatorOption {
	return func(a *Aggregator) {
		if zone != nil {
			a.zone = zone
		}
	}
}

// WithCircularWindMean averages wind directions as unit vectors instead of raw degrees
func WithCircularWindMean(enabled bool) AggregatorOption {
	return func(a *Aggregator) {
		a.circularMean = enabled
	}
}

// NewAggregator creates an aggregator that buckets by UTC date unless configured otherwise
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{zone: time.UTC}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type dayBucket struct {
	date         time.Time
	observations []Observation
}

// Aggregate returns at most requestedDays summaries ordered by ascending date.
// The input is not modified and its order does not affect the result.
func (a *Aggregator) Aggregate(observations []Observation, requestedDays int) ([]DaySummary, error) {
	if requestedDays < 1 {
		return nil, errors.NewValidationError("requested days must be at least 1")
	}
	if len(observations) == 0 {
		return nil, errors.NewInsufficientDataError("no observations to aggregate")
	}

	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return observationLess(sorted[i], sorted[j])
	})

	buckets := a.bucketByDate(sorted)
	if len(buckets) > requestedDays {
		buckets = buckets[:requestedDays]
	}

	summaries := make([]DaySummary, 0, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, a.summarize(b))
	}
	return summaries, nil
}

// observationLess orders by timestamp and breaks ties on the remaining fields
// so that slots sharing a timestamp always sort the same way.
func observationLess(a, b Observation) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	if a.ConditionID != b.ConditionID {
		return a.ConditionID < b.ConditionID
	}
	if a.ConditionMain != b.ConditionMain {
		return a.ConditionMain < b.ConditionMain
	}
	if a.ConditionDescription != b.ConditionDescription {
		return a.ConditionDescription < b.ConditionDescription
	}
	if a.TemperatureC != b.TemperatureC {
		return a.TemperatureC < b.TemperatureC
	}
	if a.HumidityPct != b.HumidityPct {
		return a.HumidityPct < b.HumidityPct
	}
	if a.PressureHPa != b.PressureHPa {
		return a.PressureHPa < b.PressureHPa
	}
	if a.WindSpeedMs != b.WindSpeedMs {
		return a.WindSpeedMs < b.WindSpeedMs
	}
	return a.WindDegrees < b.WindDegrees
}

// bucketByDate expects chronologically sorted input, so buckets come out in date order
func (a *Aggregator) bucketByDate(sorted []Observation) []dayBucket {
	var buckets []dayBucket
	for _, obs := range sorted {
		local := obs.Timestamp.In(a.zone)
		date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.zone)
		if n := len(buckets); n > 0 && buckets[n-1].date.Equal(date) {
			buckets[n-1].observations = append(buckets[n-1].observations, obs)
			continue
		}
		buckets = append(buckets, dayBucket{date: date, observations: []Observation{obs}})
	}
	return buckets
}

func (a *Aggregator) summarize(b dayBucket) DaySummary {
	first := b.observations[0]
	minTemp, maxTemp := first.TemperatureC, first.TemperatureC
	var tempSum, windSum float64
	degrees := make([]float64, 0, len(b.observations))
	conditions := make([]string, 0, len(b.observations))

	for _, obs := range b.observations {
		minTemp = math.Min(minTemp, obs.TemperatureC)
		maxTemp = math.Max(maxTemp, obs.TemperatureC)
		tempSum += obs.TemperatureC
		windSum += obs.WindSpeedMs
		degrees = append(degrees, obs.WindDegrees)
		conditions = append(conditions, obs.ConditionMain)
	}

	n := float64(len(b.observations))
	meanDegrees := scalarMeanDegrees(degrees)
	if a.circularMean {
		meanDegrees = circularMeanDegrees(degrees)
	}

	return DaySummary{
		Date:              b.date,
		DayName:           LocalizedDayName(b.date),
		MinTempC:          minTemp,
		MaxTempC:          maxTemp,
		AvgTempC:          tempSum / n,
		AvgWindSpeedMs:    windSum / n,
		WindDirection:     DirectionFromDegrees(meanDegrees),
		DominantCondition: stableMode(conditions),
		Description:       first.ConditionDescription,
		ConditionID:       first.ConditionID,
		HumidityPct:       first.HumidityPct,
		PressureHPa:       first.PressureHPa,
	}
}

// DirectionFromDegrees maps degrees to an octant via round(deg/45) mod 8.
// Halves round to even, so 22.5 maps to N and 67.5 to E.
func DirectionFromDegrees(degrees float64) WindDirection {
	octant := int(math.RoundToEven(degrees/45)) % 8
	if octant < 0 {
		octant += 8
	}
	return WindDirection(octant)
}

// scalarMeanDegrees is the arithmetic mean of raw degree values; it is wrong near the 0/360 seam
func scalarMeanDegrees(degrees []float64) float64 {
	var sum float64
	for _, d := range degrees {
		sum += d
	}
	return sum / float64(len(degrees))
}

func circularMeanDegrees(degrees []float64) float64 {
	var sinSum, cosSum float64
	for _, d := range degrees {
		rad := d * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	mean := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}
	return mean
}

// stableMode returns the most frequent value, preferring the first seen on ties
func stableMode(values []string) string {
	counts := make(map[string]int, len(values))
	var best string
	bestCount := 0
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
