package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"toyshop/internal/catalog"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLocaleResolver(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, string(LocaleFrom(c)))
	}, LocaleResolver())

	cases := []struct {
		name     string
		target   string
		accept   string
		expected catalog.Locale
	}{
		{"default", "/", "", catalog.LocaleEnglish},
		{"header", "/", "he-IL,he;q=0.9,en;q=0.8", catalog.LocaleHebrew},
		{"query wins", "/?lang=en", "he-IL", catalog.LocaleEnglish},
		{"legacy code", "/?lang=iw", "", catalog.LocaleHebrew},
		{"unsupported", "/?lang=fr", "", catalog.LocaleEnglish},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, string(tc.expected), rec.Body.String())
			assert.Equal(t, string(tc.expected), rec.Header().Get("Content-Language"))
		})
	}
}

func TestLocaleFrom_WithoutResolver(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, catalog.DefaultLocale, LocaleFrom(c))
}
