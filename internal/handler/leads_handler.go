package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intake/api/internal/dto"
	"github.com/octobees/lead-intake/api/internal/logging"
	middleware "github.com/octobees/lead-intake/api/internal/middleware"
	"github.com/octobees/lead-intake/api/internal/service"
)

// LeadCapturer runs the intake flow for one submission.
type LeadCapturer interface {
	Capture(ctx context.Context, req dto.LeadRequest) (service.CaptureResult, error)
}

// LeadsHandler exposes the public lead capture endpoint.
type LeadsHandler struct {
	service LeadCapturer
	logger  *logging.Logger
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service LeadCapturer, logger *logging.Logger) *LeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadsHandler{service: service, logger: logger}
}

// Create handles POST /api/leads requests.
func (h *LeadsHandler) Create(c echo.Context) error {
	var req dto.LeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Capture(c.Request().Context(), req)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, vErr.Status, vErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "failed to capture lead")
	}

	h.logger.Info("lead captured",
		"request_id", middleware.RequestIDFromContext(c),
		"brand", result.Lead.Brand,
		"persisted", result.Persisted,
	)

	return Success(c, http.StatusOK, dto.LeadResponse{OK: true, Message: "Lead captured"})
}
