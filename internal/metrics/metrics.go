// Package metrics provides Prometheus metrics for the tasklane server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the server.
type Metrics struct {
	OperationsTotal    *prometheus.CounterVec
	StepFailuresTotal  *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklane_operations_total",
				Help: "Task activity operations by operation and result.",
			},
			[]string{"operation", "result"},
		),
		StepFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklane_step_failures_total",
				Help: "Secondary step failures by operation and step.",
			},
			[]string{"operation", "step"},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklane_notifications_total",
				Help: "Notifications written by event type.",
			},
			[]string{"event_type"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklane_http_requests_total",
				Help: "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tasklane_http_request_duration_seconds",
				Help:    "HTTP request duration by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		registry: reg,
	}

	reg.MustRegister(m.OperationsTotal)
	reg.MustRegister(m.StepFailuresTotal)
	reg.MustRegister(m.NotificationsTotal)
	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOperation increments the operation counter.
func (m *Metrics) RecordOperation(op, result string) {
	m.OperationsTotal.WithLabelValues(op, result).Inc()
}

// RecordStepFailure increments the secondary step failure counter.
func (m *Metrics) RecordStepFailure(op, step string) {
	m.StepFailuresTotal.WithLabelValues(op, step).Inc()
}

// RecordNotifications adds count to the notification counter.
func (m *Metrics) RecordNotifications(eventType string, count int) {
	if count <= 0 {
		return
	}
	m.NotificationsTotal.WithLabelValues(eventType).Add(float64(count))
}

// RecordRequest increments the request counter.
func (m *Metrics) RecordRequest(route, code string) {
	m.RequestsTotal.WithLabelValues(route, code).Inc()
}

// ObserveDuration records request duration.
func (m *Metrics) ObserveDuration(route string, seconds float64) {
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}
