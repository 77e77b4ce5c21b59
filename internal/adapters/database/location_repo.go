package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// LocationModel represents the database model for user locations
type LocationModel struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	UserID    int64   `gorm:"uniqueIndex;not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LocationModel) TableName() string {
	return "user_locations"
}

// LocationRepositoryAdapter implements the LocationRepository port using GORM
type LocationRepositoryAdapter struct {
	db *gorm.DB
}

// NewLocationRepositoryAdapter creates a new location repository adapter
func NewLocationRepositoryAdapter(db *gorm.DB) ports.LocationRepository {
	return &LocationRepositoryAdapter{db: db}
}

// FindByUserID retrieves the stored location for a user
func (r *LocationRepositoryAdapter) FindByUserID(ctx context.Context, userID int64) (*ports.LocationData, error) {
	var model LocationModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("location not found")
		}
		return nil, errors.NewStorageError("failed to find location", result.Error)
	}

	return r.modelToData(&model), nil
}

// Upsert inserts the location or replaces the coordinate of the existing row for the same user.
// The conflict clause keeps concurrent writers for one user from creating duplicates.
func (r *LocationRepositoryAdapter) Upsert(ctx context.Context, loc *ports.LocationData) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}

	model := r.dataToModel(loc)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
		}).Create(model).Error
	})
	if err != nil {
		return errors.NewStorageError("failed to upsert location", err)
	}

	return nil
}

// Count counts users with a stored location
func (r *LocationRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&LocationModel{}).Count(&count)
	if result.Error != nil {
		return 0, errors.NewStorageError("failed to count locations", result.Error)
	}

	return count, nil
}

// dataToModel converts port data to database model
func (r *LocationRepositoryAdapter) dataToModel(data *ports.LocationData) *LocationModel {
	return &LocationModel{
		UserID:    data.UserID,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
	}
}

// modelToData converts database model to port data
func (r *LocationRepositoryAdapter) modelToData(model *LocationModel) *ports.LocationData {
	return &ports.LocationData{
		ID:        model.ID,
		UserID:    model.UserID,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
