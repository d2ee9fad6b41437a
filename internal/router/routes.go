package router

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intake/api/internal/handler"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Leads  *handler.LeadsHandler
	Health *handler.HealthHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, handlers Handlers) {
	e.GET("/", handlers.Health.Root)
	e.GET("/test", handlers.Health.Diagnostics)

	api := e.Group("/api")
	api.GET("/hello", handlers.Health.Hello)
	api.POST("/leads", handlers.Leads.Create)
}
