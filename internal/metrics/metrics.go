package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toyshop_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "toyshop_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toyshop_cache_lookups_total",
		Help: "Catalog cache lookups by key kind and result",
	}, []string{"kind", "result"})

	categoryWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toyshop_category_writes_total",
		Help: "Category writes by operation and outcome",
	}, []string{"operation", "outcome"})

	browseResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "toyshop_catalog_browse_results",
		Help:    "Number of products matching a catalog browse request",
		Buckets: []float64{0, 1, 5, 24, 48, 96, 250, 1000},
	})

	refreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toyshop_catalog_refresh_runs_total",
		Help: "Background catalog cache refreshes by outcome",
	}, []string{"outcome"})
)

// Middleware records request counts and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func CacheHit(kind string)  { cacheLookups.WithLabelValues(kind, "hit").Inc() }
func CacheMiss(kind string) { cacheLookups.WithLabelValues(kind, "miss").Inc() }

// CategoryWrite counts a category mutation; err == nil counts as success.
func CategoryWrite(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	categoryWrites.WithLabelValues(operation, outcome).Inc()
}

func BrowseResults(n int) { browseResults.Observe(float64(n)) }

func RefreshRun(err error) {
	if err != nil {
		refreshRuns.WithLabelValues("error").Inc()
		return
	}
	refreshRuns.WithLabelValues("success").Inc()
}
