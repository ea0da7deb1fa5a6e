// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups, mapping paths to
// their handlers.
package router

import (
	"github.com/deppfellow/produce-api/internal/handler"
	"github.com/deppfellow/produce-api/internal/middleware"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain and
// every route. Test support routes are mounted only outside production.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limiter(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerProduceRoutes(router, h)

	if !s.Config.IsProduction() {
		registerTestingRoutes(router, h)
	}

	return router
}
