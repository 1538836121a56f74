// Package metrics holds the Prometheus collectors of the integration hub.
//
// Every collector is registered on a private registry so tests can build as
// many Metrics instances as they like without clashing on the default one.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the hub
type Metrics struct {
	// Firewall metrics
	firewallRejections *prometheus.CounterVec

	// Transport metrics
	transportCalls    *prometheus.CounterVec
	transportDuration *prometheus.HistogramVec

	// Webhook metrics
	webhookRequests *prometheus.CounterVec

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Worker metrics
	noncesPruned prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics instance with all hub metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		firewallRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firewall_rejections_total",
				Help: "Total number of inbound requests rejected by a firewall guard",
			},
			[]string{"guard"},
		),

		transportCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transport_calls_total",
				Help: "Total number of outbound calls by transport type and outcome",
			},
			[]string{"type", "success"},
		),

		transportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transport_call_duration_seconds",
				Help:    "Outbound call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),

		webhookRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_requests_total",
				Help: "Total number of webhook deliveries by service and response status",
			},
			[]string{"service", "status"},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status_code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		noncesPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nonces_pruned_total",
				Help: "Total number of expired nonce records deleted",
			},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.firewallRejections,
		m.transportCalls,
		m.transportDuration,
		m.webhookRequests,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.noncesPruned,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRejection counts a request blocked by the named guard.
func (m *Metrics) RecordRejection(guard string) {
	if m == nil {
		return
	}
	m.firewallRejections.WithLabelValues(guard).Inc()
}

// RecordTransportCall records the outcome and latency of one outbound call.
func (m *Metrics) RecordTransportCall(transportType string, success bool, latency time.Duration) {
	if m == nil {
		return
	}
	m.transportCalls.WithLabelValues(transportType, strconv.FormatBool(success)).Inc()
	m.transportDuration.WithLabelValues(transportType).Observe(latency.Seconds())
}

// RecordWebhook records the response status of one webhook delivery.
// service must come from a bounded set of known slugs.
func (m *Metrics) RecordWebhook(service string, status int) {
	if m == nil {
		return
	}
	m.webhookRequests.WithLabelValues(service, strconv.Itoa(status)).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordNoncesPruned adds n deleted nonce records.
func (m *Metrics) RecordNoncesPruned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.noncesPruned.Add(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
