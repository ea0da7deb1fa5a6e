package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/produce-api/internal/middleware"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves GET /status.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth pings the storage handle and answers 200 when it responds, 503
// otherwise. Failures are also reported to New Relic as HealthCheckError
// events.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	healthCfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	// Response shape: overall status plus one entry per check.
	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	// With checks disabled the endpoint only reports that the process is up.
	if healthCfg.Enabled {
		// The ping is bounded by health_checks.timeout.
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
		defer cancel()

		dbStart := time.Now()
		if err := h.server.DB.Ping(ctx); err != nil {
			isHealthy = false
			checks["database"] = map[string]any{
				"status":        "unhealthy",
				"driver":        h.server.DB.Driver(),
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			// Surface the failure in New Relic as a custom event.
			h.recordHealthCheckError("database", map[string]any{
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["database"] = map[string]any{
				"status":        "healthy",
				"driver":        h.server.DB.Driver(),
				"response_time": time.Since(dbStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check passed")
		}
	}

	// Any failed check turns the answer into a 503.
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthCheckError sends a HealthCheckError custom event. It is a no-op
// without a New Relic application.
func (h *HealthHandler) recordHealthCheckError(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	event := map[string]any{
		"check_type": checkType,
		"operation":  "health_check",
		"error_type": checkType + "_unhealthy",
	}
	for k, v := range attrs {
		event[k] = v
	}

	app.RecordCustomEvent("HealthCheckError", event)
}
