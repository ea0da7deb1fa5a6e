package handler

import (
	"github.com/deppfellow/produce-api/internal/model"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/deppfellow/produce-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ProduceHandler struct {
	Handler
	produceService *service.ProduceService
}

func NewProduceHandler(s *server.Server, produceService *service.ProduceService) *ProduceHandler {
	return &ProduceHandler{
		Handler:        NewHandler(s),
		produceService: produceService,
	}
}

func (h *ProduceHandler) CreateProduce(c echo.Context, req *CreateProduceRequest) (*model.Produce, error) {
	return h.produceService.Create(c.Request().Context(), req.toModel())
}

func (h *ProduceHandler) GetProduce(c echo.Context, req *ProduceIDRequest) (*model.Produce, error) {
	return h.produceService.Get(c.Request().Context(), req.ID)
}

func (h *ProduceHandler) ListProduce(c echo.Context, _ *EmptyRequest) ([]model.Produce, error) {
	return h.produceService.List(c.Request().Context())
}

func (h *ProduceHandler) UpdateProduce(c echo.Context, req *UpdateProduceRequest) (*model.Produce, error) {
	return h.produceService.Update(c.Request().Context(), req.ID, req.toPatch())
}

func (h *ProduceHandler) DeleteProduce(c echo.Context, req *ProduceIDRequest) error {
	return h.produceService.Delete(c.Request().Context(), req.ID)
}
