// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/middleware"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/validation"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

// Handler holds shared application dependencies for concrete handlers.
type Handler struct {
	server *server.Server
}

// NewHandler creates the base embedded by every resource handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Request is the constraint on request payloads: PReq is a pointer to Req
// and validates itself.
type Request[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps the typed endpoint fn with binding, validation, logging and tracing, and writes
// the result as JSON with status. A fresh request value is allocated for
// every call.
//
//	g.POST("/users", handler.Handle(h.User.Create, http.StatusCreated))
func Handle[Req any, PReq Request[Req], Res any](fn func(echo.Context, PReq) (Res, error), status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req PReq = new(Req)
		return handleRequest(c, req, fn, status)
	}
}

// handleRequest is the shared pipeline:
//
//   - bind path params and body, then validate
//   - run the handler
//   - record timings on the New Relic transaction and the request logger
//   - write the JSON response
//
// Errors are returned to Echo's error handler untouched, except that
// unclassified errors without a stack get one.
func handleRequest[Req any, PReq Request[Req], Res any](
	c echo.Context,
	req PReq,
	fn func(echo.Context, PReq) (Res, error),
	status int,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := fn(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		err = withStack(err)

		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return c.JSON(status, result)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// withStack attaches a stack to unclassified errors that do not carry one.
func withStack(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	var st stackTracer
	if errors.As(err, &st) {
		return err
	}
	return errors.WithStack(err)
}
