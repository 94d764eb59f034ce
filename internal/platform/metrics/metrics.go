// Package metrics holds the Prometheus instruments of the API and its outbound vendor calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expense_tracker"

// Vendor call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	vendorCalls    *prometheus.CounterVec
	vendorDuration *prometheus.HistogramVec
	eventsDropped  *prometheus.CounterVec
}

// New creates the instruments on a private registry together with the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		vendorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendor_calls_total",
			Help:      "Outbound calls to third-party APIs, by vendor and outcome.",
		}, []string{"vendor", "outcome"}),
		vendorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vendor_call_duration_seconds",
			Help:      "Outbound call latency, by vendor.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"vendor"}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Domain events that could not be published, by type.",
		}, []string{"type"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.vendorCalls,
		m.vendorDuration,
		m.eventsDropped,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveVendorCall records one outbound call. err decides the outcome label.
func (m *Metrics) ObserveVendorCall(vendor string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.vendorCalls.WithLabelValues(vendor, outcome).Inc()
	m.vendorDuration.WithLabelValues(vendor).Observe(time.Since(started).Seconds())
}

// EventDropped counts an event that the publisher failed to deliver.
func (m *Metrics) EventDropped(eventType string) {
	if m == nil {
		return
	}
	m.eventsDropped.WithLabelValues(eventType).Inc()
}
