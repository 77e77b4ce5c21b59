package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"lakeweather.bot/internal/ports"
	errorspkg "lakeweather.bot/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// handleError maps application error types onto HTTP status codes.
// Infrastructure details never reach the client.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		s.logError(c, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", RequestID: requestIDFrom(c)})
		return
	}

	switch appErr.Type {
	case errorspkg.ValidationError, errorspkg.UnsupportedRangeError:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.NotFoundError:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.ProviderUnavailableError, errorspkg.InsufficientDataError:
		statusCode = http.StatusServiceUnavailable
		message = "Forecast provider unavailable"
	case errorspkg.StorageError:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		s.logError(c, err)
	}
	c.JSON(statusCode, ErrorResponse{Error: message, RequestID: requestIDFrom(c)})
}

func (s *HTTPServerAdapter) logError(c *gin.Context, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error("Request failed",
		ports.F("path", c.FullPath()),
		ports.F("requestID", requestIDFrom(c)),
		ports.F("error", err))
}
