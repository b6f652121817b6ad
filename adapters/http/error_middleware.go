package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/pkg/apperror"
	"github.com/devlinkhq/devlink/pkg/logger"
)

// ErrorMiddleware turns errors collected via c.Error into JSON responses.
// Client-category errors keep their message; anything internal is logged in
// full and surfaced as an opaque failure.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= 500 {
			log.Error("Request failed", appErr,
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()))
		} else {
			log.Debug("Request rejected",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.String("reason", appErr.Message))
		}

		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}
