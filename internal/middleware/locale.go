package middleware

import (
	"toyshop/internal/catalog"

	"github.com/labstack/echo/v4"
)

const (
	localeContextKey      = "locale"
	headerAcceptLanguage  = "Accept-Language"
	headerContentLanguage = "Content-Language"
)

// LocaleResolver picks the display locale of a request: an explicit ?lang= wins over the
// Accept-Language header. The result is stored on the context and echoed in Content-Language.
func LocaleResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var locale catalog.Locale
			if lang := c.QueryParam("lang"); lang != "" {
				locale = catalog.ParseLocale(lang)
			} else {
				locale = catalog.NegotiateLocale(c.Request().Header.Get(headerAcceptLanguage))
			}
			c.Set(localeContextKey, locale)

			h := c.Response().Header()
			h.Set(headerContentLanguage, string(locale))
			h.Add(echo.HeaderVary, headerAcceptLanguage)
			return next(c)
		}
	}
}

// LocaleFrom returns the locale resolved by LocaleResolver, or the default locale.
func LocaleFrom(c echo.Context) catalog.Locale {
	if locale, ok := c.Get(localeContextKey).(catalog.Locale); ok {
		return locale
	}
	return catalog.DefaultLocale
}
