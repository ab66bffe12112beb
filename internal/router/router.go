// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/handler"
	"github.com/maprangsoft/crudapi/internal/middleware"
	"github.com/maprangsoft/crudapi/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain, the
// error handler and every route.
//
// Middleware order matters: the request id feeds tracing and the request
// logger, the locale must be known before any error is rendered, and Recover
// sits inside the request logger so a panic is logged with its final status.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Locale.Localize(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerResourceRoutes(router, h)

	return router
}
