package ports

import (
	"context"
	"time"
)

// LocationData represents a stored user location
type LocationData struct {
	ID        uint
	UserID    int64
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationRepository defines the contract for user location persistence
type LocationRepository interface {
	// FindByUserID returns a NotFound error when the user has never shared a location
	FindByUserID(ctx context.Context, userID int64) (*LocationData, error)
	// Upsert inserts or replaces the location for loc.UserID atomically
	Upsert(ctx context.Context, loc *LocationData) error
	Count(ctx context.Context) (int64, error)
}
