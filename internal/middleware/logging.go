package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intake/api/internal/logging"
)

// Logging writes a concise structured line for each HTTP request.
func Logging(logger *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			logger.Info("request",
				"request_id", RequestIDFromContext(c),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency", latency.String(),
			)

			return err
		}
	}
}
