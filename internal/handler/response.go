package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intake/api/internal/logging"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Success sends a JSON payload, defaulting the status to 200.
func Success(c echo.Context, status int, payload any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, payload)
}

// Error sends an error detail, defaulting the status to 500.
func Error(c echo.Context, status int, detail string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorResponse{Detail: detail})
}

// HTTPErrorHandler renders echo errors (unknown routes, bad methods, panics
// caught by Recover) with the same detail envelope as handler errors.
func HTTPErrorHandler(logger *logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		detail := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			} else {
				detail = http.StatusText(status)
			}
		} else if logger != nil {
			logger.Error("unhandled request error", "error", err, "path", c.Request().URL.Path)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = Error(c, status, detail)
		}
		if err != nil && logger != nil {
			logger.Error("write error response", "error", err)
		}
	}
}
