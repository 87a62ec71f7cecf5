package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Err writes an error as a JSON HTTP response.
func Err(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		c.JSON(appErr.Code, appErr)
		return
	}
	c.JSON(http.StatusInternalServerError, &AppError{
		Kind:    "unknown",
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

// ErrorHandlerMiddleware tags each request with an id and converts deferred
// gin errors into JSON responses.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("RequestID", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		if len(c.Errors) > 0 {
			Err(c, c.Errors[0].Err)
			c.Abort()
		}
	}
}

// RecoveryMiddleware recovers from handler panics and returns a 500 instead
// of tearing down the connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err *AppError
				switch v := r.(type) {
				case error:
					err = Internal("panic recovered", v)
				default:
					err = Internal(fmt.Sprintf("panic recovered: %v", r), nil)
				}
				log.Error().Err(err).Msg("panic recovered")
				c.JSON(http.StatusInternalServerError, err)
				c.Abort()
			}
		}()

		c.Next()
	}
}
