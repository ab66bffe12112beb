package router

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/handler"
	"github.com/maprangsoft/crudapi/static"
)

// registerSystemRoutes registers the endpoints that are not part of the
// resource API: liveness, readiness and the API reference.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.Liveness)
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
