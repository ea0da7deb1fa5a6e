package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/produce-api/internal/server"
	"github.com/deppfellow/produce-api/static"
	"github.com/labstack/echo/v4"
)

type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

// NewOpenAPIHandler serves the documentation UI from the embedded assets.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  static.FS,
	}
}

// ServeOpenAPIUI renders openapi.html, which loads /static/openapi.json.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(h.assets, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
