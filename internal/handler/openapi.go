package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/static"
)

// OpenAPIHandler serves the API reference page. The page loads its viewer
// from a CDN and reads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

// NewOpenAPIHandler creates the /docs handler.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  static.FS,
	}
}

// ServeOpenAPIUI serves openapi.html uncached, so edits to the document show
// up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(h.assets, "openapi.html")
	c.Response().Header().Set("Cache-Control", "no-cache")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	return c.HTMLBlob(http.StatusOK, page)
}
