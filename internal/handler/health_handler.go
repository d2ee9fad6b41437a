package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intake/api/internal/config"
	"github.com/octobees/lead-intake/api/internal/dto"
)

const maxDiagnosticCollections = 10

// StoreChecker exposes the document store checks used by the diagnostics endpoint.
type StoreChecker interface {
	Available() bool
	Name() string
	Ping(ctx context.Context) error
	ListCollections(ctx context.Context, limit int) ([]string, error)
}

// HealthHandler serves liveness and diagnostics endpoints.
type HealthHandler struct {
	store StoreChecker
	cfg   *config.Config
}

// NewHealthHandler creates a new handler instance. store may be nil.
func NewHealthHandler(store StoreChecker, cfg *config.Config) *HealthHandler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &HealthHandler{store: store, cfg: cfg}
}

// Root handles GET /.
func (h *HealthHandler) Root(c echo.Context) error {
	return Success(c, http.StatusOK, dto.MessageResponse{Message: "Hello from the lead intake API!"})
}

// Hello handles GET /api/hello.
func (h *HealthHandler) Hello(c echo.Context) error {
	return Success(c, http.StatusOK, dto.MessageResponse{Message: "Hello from the backend API!"})
}

// Diagnostics handles GET /test. It always answers 200 and describes what is
// wrong instead of failing.
func (h *HealthHandler) Diagnostics(c echo.Context) error {
	resp := dto.DiagnosticsResponse{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "not connected",
		Collections:      []string{},
		DatabaseURL:      setOrNot(h.cfg.DatabaseURL),
		DatabaseName:     setOrNot(h.cfg.DatabaseName),
	}

	if h.store == nil || !h.store.Available() {
		return Success(c, http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		resp.Database = fmt.Sprintf("error: %s", truncate(err.Error(), 50))
		return Success(c, http.StatusOK, resp)
	}
	resp.Database = "available"
	resp.ConnectionStatus = "connected"
	if name := h.store.Name(); name != "" {
		resp.DatabaseName = name
	}

	collections, err := h.store.ListCollections(ctx, maxDiagnosticCollections)
	if err != nil {
		resp.Database = fmt.Sprintf("connected but error: %s", truncate(err.Error(), 50))
		return Success(c, http.StatusOK, resp)
	}
	resp.Collections = collections
	resp.Database = "connected & working"

	return Success(c, http.StatusOK, resp)
}

func setOrNot(value string) string {
	if value == "" {
		return "not set"
	}
	return "set"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
