package router

import (
	"net/http"

	"github.com/deppfellow/produce-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerProduceRoutes(r *echo.Echo, h *handler.Handlers) {
	produce := r.Group("/produce")

	produce.POST("", handler.Handle[handler.CreateProduceRequest](
		h.Produce.Handler, h.Produce.CreateProduce, http.StatusCreated))

	produce.GET("", handler.Handle[handler.EmptyRequest](
		h.Produce.Handler, h.Produce.ListProduce, http.StatusOK))

	produce.GET("/:id", handler.Handle[handler.ProduceIDRequest](
		h.Produce.Handler, h.Produce.GetProduce, http.StatusOK))

	produce.PUT("/:id", handler.Handle[handler.UpdateProduceRequest](
		h.Produce.Handler, h.Produce.UpdateProduce, http.StatusOK))

	produce.DELETE("/:id", handler.HandleNoContent[handler.ProduceIDRequest](
		h.Produce.Handler, h.Produce.DeleteProduce, http.StatusNoContent))
}

// registerTestingRoutes mounts the routes end-to-end suites use to reset
// state between runs.
func registerTestingRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/__test/reset", handler.Handle[handler.EmptyRequest](
		h.Testing.Handler, h.Testing.Reset, http.StatusOK))
}
