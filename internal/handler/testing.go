package handler

import (
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/deppfellow/produce-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ResetResponse acknowledges a reset.
type ResetResponse struct {
	OK bool `json:"ok"`
}

// TestingHandler serves routes used by end-to-end test suites to put the
// service in a known state. The router only mounts it outside production.
type TestingHandler struct {
	Handler
	produceService *service.ProduceService
}

func NewTestingHandler(s *server.Server, produceService *service.ProduceService) *TestingHandler {
	return &TestingHandler{
		Handler:        NewHandler(s),
		produceService: produceService,
	}
}

func (h *TestingHandler) Reset(c echo.Context, _ *EmptyRequest) (ResetResponse, error) {
	if err := h.produceService.Reset(c.Request().Context()); err != nil {
		return ResetResponse{}, err
	}
	return ResetResponse{OK: true}, nil
}
