package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// LocationRequest represents the body of PUT /api/users/:id/location
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// LocationResponse represents a user's effective location
type LocationResponse struct {
	UserID    int64   `json:"userId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// getLocation handles GET /api/users/:id/location. Users who never shared a
// location get the default one.
func (s *HTTPServerAdapter) getLocation(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	coord, err := s.locationUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LocationResponse{UserID: userID, Latitude: coord.Latitude, Longitude: coord.Longitude})
}

// putLocation handles PUT /api/users/:id/location
func (s *HTTPServerAdapter) putLocation(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	var request LocationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.handleError(c, errors.NewValidationError("invalid location body: "+err.Error()))
		return
	}

	coord := location.Coordinate{Latitude: *request.Latitude, Longitude: *request.Longitude}
	if err := s.locationUseCase.Upsert(c.Request.Context(), userID, coord); err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("Location updated via API",
		ports.F("requestID", requestIDFrom(c)),
		ports.F("userID", userID))
	c.JSON(http.StatusOK, LocationResponse{UserID: userID, Latitude: coord.Latitude, Longitude: coord.Longitude})
}

func parseUserID(c *gin.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("user id must be an integer")
	}
	return userID, nil
}
