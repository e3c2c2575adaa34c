package graphdb

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type storeMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// Singleton so repeated gateways in one process share the registration.
var (
	metricsInstance *storeMetrics
	metricsOnce     sync.Once
	metricsRegistry = prometheus.DefaultRegisterer
)

func newStoreMetrics() *storeMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &storeMetrics{
			operations: promauto.With(metricsRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "feedback_store_operations_total",
				Help: "Graph store operations by operation and outcome",
			}, []string{"operation", "outcome"}),
			duration: promauto.With(metricsRegistry).NewHistogramVec(prometheus.HistogramOpts{
				Name:    "feedback_store_operation_duration_seconds",
				Help:    "Time taken by graph store operations",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			}, []string{"operation"}),
		}
	})
	return metricsInstance
}

// resetMetricsForTesting swaps in a fresh registry. Tests only.
func resetMetricsForTesting() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	metricsRegistry = reg
	metricsInstance = nil
	metricsOnce = sync.Once{}
	return reg
}

func (m *storeMetrics) observe(operation string, start time.Time, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
