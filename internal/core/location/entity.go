package location

import (
	"fmt"

	"lakeweather.bot/pkg/validation"
)

// Coordinate is a geographic point in decimal degrees
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// UserLocation associates a chat user with the coordinate they last shared
type UserLocation struct {
	UserID     int64
	Coordinate Coordinate
}

// Validate checks that the coordinate lies within the valid latitude and longitude ranges
func (c Coordinate) Validate() error {
	if !validation.IsValidLatitude(c.Latitude) {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if !validation.IsValidLongitude(c.Longitude) {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// String returns the coordinate as "lat, lon" with full precision
func (c Coordinate) String() string {
	return fmt.Sprintf("%v, %v", c.Latitude, c.Longitude)
}

// Short returns the coordinate rounded to four decimals
func (c Coordinate) Short() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}
