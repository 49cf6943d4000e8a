package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/service"
	"github.com/freizeitplan/backend/internal/units"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps the core's deterministic computation errors to HTTP
// statuses. Incompatible units and invalid servings are data problems the
// user has to fix upstream, so they come back as 422, not 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, units.ErrIncompatibleUnits),
		errors.Is(err, service.ErrInvalidServings),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidParticipants):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes the mapped JSON error response and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusFor(err), ErrorResponse{Error: err.Error()})
}

// ErrorHandler recovers panics into a JSON 500 and logs them.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in handler",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		c.Next()
	}
}
