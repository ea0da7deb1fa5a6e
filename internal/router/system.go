package router

import (
	"github.com/deppfellow/produce-api/internal/handler"
	"github.com/deppfellow/produce-api/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the produce
// API: health, docs UI, and the docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
