package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware installed on every route plus the
// global error handler. It keeps the server so they can read config.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares creates the global middleware set and error handler.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows browser clients from the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// BodyLimit rejects request bodies larger than server.body_limit with 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(global.server.Config.Server.BodyLimit)
}

// RequestLogger writes one "API" line per request, at a level chosen from
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// A returned error has not been written yet when this runs; the
			// error handler decides the status, so resolve it the same way.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				resolved, _ := resolveError(v.Error, c)
				statusCode = resolved.Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors handled by GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure sets the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// resolveError maps any error returned by a route to the error the client
// sees. The boolean reports an unclassified error, whose message and stack
// are internal detail.
//
// Order:
//  1. *errs.HTTPError as is.
//  2. Echo 404/405 (no route, or no such method on a route) -> route not found.
//  3. Store errors classified by sqlerr.Translate.
//  4. Anything else keeps the status of an *echo.HTTPError, or 500.
func resolveError(err error, c echo.Context) (*errs.HTTPError, bool) {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, false
	}

	var echoErr *echo.HTTPError
	isEchoErr := errors.As(err, &echoErr)
	if isEchoErr && (echoErr.Code == http.StatusNotFound || echoErr.Code == http.StatusMethodNotAllowed) {
		return errs.NewRouteNotFoundError(c.Request().Method, c.Request().URL.RequestURI()), false
	}

	if translated := sqlerr.Translate(err); translated != nil {
		return translated, false
	}

	status := http.StatusInternalServerError
	message := err.Error()
	if isEchoErr {
		status = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}
	}
	return errs.NewStatusError(status, message), true
}

// GlobalErrorHandler is installed as Echo's HTTPErrorHandler and is the only
// place error responses are written. The envelope is
//
//	{"error": {"code": "...", "message": "...", "stack": "...", "errors": [...]}}
//
// Messages are localized for the request. Unclassified errors show their
// raw text and stack only outside production.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	resolved, unclassified := resolveError(err, c)
	ctx := c.Request().Context()
	production := global.server.Config.IsProduction()

	body := errs.ErrorBody{
		Code:    resolved.Code,
		Message: resolved.Localize(ctx),
		Errors:  resolved.Errors,
	}

	if unclassified {
		if production {
			if resolved.Status >= http.StatusInternalServerError {
				body.Message = i18n.Ctx(ctx, i18n.ErrInternal)
			} else {
				body.Message = i18n.Ctx(ctx, i18n.ErrRequest)
			}
		} else {
			body.Stack = fmt.Sprintf("%+v", err)
		}
	}

	logger := GetLogger(c)
	var event *zerolog.Event
	switch resolved.Kind {
	case errs.KindInternal:
		if resolved.Status >= http.StatusInternalServerError {
			event = logger.Error().Stack()
		} else {
			event = logger.Warn()
		}
	case errs.KindValidation, errs.KindNotFound, errs.KindConflict:
		event = logger.Debug()
	}
	event.
		Err(err).
		Int("status", resolved.Status).
		Str("error_code", resolved.Code).
		Str("kind", resolved.Kind.String()).
		Msg(resolved.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resolved.Status)
	} else {
		err = c.JSON(resolved.Status, errs.ErrorResponse{Error: body})
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
