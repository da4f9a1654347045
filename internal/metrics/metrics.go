// Package metrics exposes Prometheus instrumentation for the fraud service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the service's Prometheus metrics behind a dedicated
// registry so tests can create isolated instances.
type Collector struct {
	registry      *prometheus.Registry
	checksTotal   *prometheus.CounterVec
	signalsTotal  *prometheus.CounterVec
	checkDuration prometheus.Histogram
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		checksTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_checks_total",
			Help: "Total number of fraud checks by verdict",
		}, []string{"result"}),
		signalsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_signals_total",
			Help: "Total number of fired fraud signals by rule",
		}, []string{"rule"}),
		checkDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fraud_check_duration_seconds",
			Help:    "Time taken to evaluate one transaction",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordCheck records one completed evaluation.
func (c *Collector) RecordCheck(fraud bool, duration time.Duration) {
	result := "clean"
	if fraud {
		result = "fraud"
	}
	c.checksTotal.WithLabelValues(result).Inc()
	c.checkDuration.Observe(duration.Seconds())
}

// RecordSignal counts a fired rule.
func (c *Collector) RecordSignal(rule string) {
	c.signalsTotal.WithLabelValues(rule).Inc()
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
