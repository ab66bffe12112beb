package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/server"
)

const (
	headerAcceptLanguage  = "Accept-Language"
	headerContentLanguage = "Content-Language"
)

// LocaleMiddleware resolves the response language for each request.
type LocaleMiddleware struct {
	server *server.Server
}

// NewLocaleMiddleware creates the locale middleware, falling back to
// primary.default_locale.
func NewLocaleMiddleware(s *server.Server) *LocaleMiddleware {
	return &LocaleMiddleware{server: s}
}

// Localize matches Accept-Language against the loaded catalogs, falling back
// to the configured default locale, and stores the locale and its localizer
// in the request context. The chosen locale is sent back as Content-Language.
func (lm *LocaleMiddleware) Localize() echo.MiddlewareFunc {
	fallback := lm.server.Config.Primary.DefaultLocale
	if fallback == "" {
		fallback = i18n.DefaultLocale
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			locale := i18n.ParseLocale(c.Request().Header.Get(headerAcceptLanguage), fallback)

			ctx := i18n.WithLocale(c.Request().Context(), locale)
			ctx = i18n.WithLocalizer(ctx, i18n.NewLocalizer(locale))
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(headerContentLanguage, locale)

			return next(c)
		}
	}
}
