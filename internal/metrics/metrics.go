// Package metrics exposes Prometheus collectors for the loader and the HTTP
// server on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KaramelBytes/review-digest/internal/loader"
	"github.com/KaramelBytes/review-digest/internal/review"
)

const namespace = "reviewdigest"

var httpDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LoadAttemptsTotal   *prometheus.CounterVec
	StoreRecords        prometheus.Gauge
	StoreCategories     prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency.",
			Buckets: httpDurationBuckets,
		}, []string{"method", "route"}),
		LoadAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "load_attempts_total", Help: "Encoding/delimiter combinations evaluated.",
		}, []string{"encoding", "delimiter", "result"}),
		StoreRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "store_records", Help: "Records held by the aggregated store.",
		}),
		StoreCategories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "store_categories", Help: "Categories held by the aggregated store.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoadAttemptsTotal,
		m.StoreRecords,
		m.StoreCategories,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveAttempt counts one evaluated loader candidate.
func (m *Metrics) ObserveAttempt(a loader.Attempt) {
	if m == nil {
		return
	}
	result := "rejected"
	switch {
	case a.Accepted:
		result = "accepted"
	case a.Err != nil:
		result = "error"
	}
	m.LoadAttemptsTotal.WithLabelValues(a.Candidate.Encoding, loader.DelimiterName(a.Candidate.Delimiter), result).Inc()
}

// ObserveStore records the size of the store that is about to be served.
func (m *Metrics) ObserveStore(s review.Store) {
	if m == nil {
		return
	}
	m.StoreRecords.Set(float64(s.Len()))
	m.StoreCategories.Set(float64(len(s)))
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
