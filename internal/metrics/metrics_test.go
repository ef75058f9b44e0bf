package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/categories/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("/api/categories/:id", "GET", "404"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/7", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/api/categories/:id", "GET", "404")))
}

func TestCounters(t *testing.T) {
	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("categories", "hit"))
	CacheHit("categories")
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheLookups.WithLabelValues("categories", "hit")))

	failures := testutil.ToFloat64(categoryWrites.WithLabelValues("reorder", "error"))
	CategoryWrite("reorder", errors.New("boom"))
	assert.Equal(t, failures+1, testutil.ToFloat64(categoryWrites.WithLabelValues("reorder", "error")))

	runs := testutil.ToFloat64(refreshRuns.WithLabelValues("success"))
	RefreshRun(nil)
	assert.Equal(t, runs+1, testutil.ToFloat64(refreshRuns.WithLabelValues("success")))
}

func TestHandler(t *testing.T) {
	CacheMiss("products")
	e := echo.New()
	e.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "toyshop_cache_lookups_total")
}
