package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"Ladoga", Coordinate{Latitude: 61.111969, Longitude: 30.339632}, false},
		{"NorthPole", Coordinate{Latitude: 90, Longitude: 0}, false},
		{"DateLine", Coordinate{Latitude: 0, Longitude: -180}, false},
		{"LatitudeTooHigh", Coordinate{Latitude: 90.0001, Longitude: 0}, true},
		{"LatitudeTooLow", Coordinate{Latitude: -91, Longitude: 0}, true},
		{"LongitudeTooHigh", Coordinate{Latitude: 0, Longitude: 180.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordinate_Formatting(t *testing.T) {
	c := Coordinate{Latitude: 59.934280, Longitude: 30.335099}

	assert.Equal(t, "59.93428, 30.335099", c.String())
	assert.Equal(t, "59.9343, 30.3351", c.Short())
}
