package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// IsValidLatitude reports whether lat lies within [-90, 90]
func IsValidLatitude(lat float64) bool {
	return instance().Var(lat, "latitude") == nil
}

// IsValidLongitude reports whether lon lies within [-180, 180]
func IsValidLongitude(lon float64) bool {
	return instance().Var(lon, "longitude") == nil
}

// IsValidForecastDays checks that days lies within [1, maxDays]
func IsValidForecastDays(days, maxDays int) bool {
	return days >= 1 && days <= maxDays
}
