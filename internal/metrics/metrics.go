// Package metrics exposes request counters and latencies of the API in the
// Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bank_admin",
			Name:      "entity_requests_total",
			Help:      "Entity API requests by entity, operation and status code.",
		}, []string{"entity", "operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bank_admin",
			Name:      "entity_request_duration_seconds",
			Help:      "Entity API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "operation"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Observe(entity, operation string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(entity, operation, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(entity, operation).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
