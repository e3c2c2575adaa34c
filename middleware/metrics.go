package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Singleton pattern for metrics (avoid double registration in tests).
var (
	httpMetricsInstance *httpMetrics
	httpMetricsOnce     sync.Once
	httpMetricsRegistry = prometheus.DefaultRegisterer
)

func newHTTPMetrics() *httpMetrics {
	httpMetricsOnce.Do(func() {
		httpMetricsInstance = &httpMetrics{
			requests: promauto.With(httpMetricsRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "feedback_http_requests_total",
				Help: "HTTP requests by method, route and status",
			}, []string{"method", "route", "status"}),
			duration: promauto.With(httpMetricsRegistry).NewHistogramVec(prometheus.HistogramOpts{
				Name:    "feedback_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "route"}),
		}
	})
	return httpMetricsInstance
}

// resetHTTPMetricsForTesting swaps in a fresh registry. Tests only.
func resetHTTPMetricsForTesting() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	httpMetricsRegistry = reg
	httpMetricsInstance = nil
	httpMetricsOnce = sync.Once{}
	return reg
}

// MetricsMiddleware records request counts and latency per matched route.
// Unmatched paths share one label so scanners cannot blow up cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	m := newHTTPMetrics()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
