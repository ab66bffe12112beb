package middleware

import (
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups all middleware components used by the HTTP server so
// the router can build them once and reuse them.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, the body
	// limit and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing wraps requests in New Relic transactions when enabled.
	Tracing *TracingMiddleware

	// Locale picks the response language from Accept-Language.
	Locale *LocaleMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades into
// a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Locale:          NewLocaleMiddleware(s),
	}
}
