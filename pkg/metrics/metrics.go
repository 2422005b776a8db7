// Package metrics holds the Prometheus collectors exported by the services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics is a registry plus the collectors recorded against it
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	resolutions     *prometheus.CounterVec
	resolveDuration prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	rateLimited     prometheus.Counter
	invalidations   *prometheus.CounterVec
	publishFailures *prometheus.CounterVec
}

// New builds and registers all collectors under namespace. When withRuntime
// is set the Go and process collectors are registered too.
func New(namespace string, withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Validating carrier resolutions by result and settlement plan.",
		}, []string{"result", "plan"}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Time spent resolving one itinerary.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reference_cache",
			Name:      "lookups_total",
			Help:      "Reference data cache lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-agency rate limiter.",
		}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reference_cache",
			Name:      "invalidations_total",
			Help:      "Reference data cache generations bumped, by country.",
		}, []string{"country"}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Events that could not be delivered, by topic.",
		}, []string{"topic"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.resolutions,
		m.resolveDuration,
		m.cacheLookups,
		m.rateLimited,
		m.invalidations,
		m.publishFailures,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry exposes the underlying registry for gathering in tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, code int, took time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// ObserveResolution records one resolver outcome
func (m *Metrics) ObserveResolution(result, plan string, took time.Duration) {
	m.resolutions.WithLabelValues(result, plan).Inc()
	m.resolveDuration.Observe(took.Seconds())
}

// CacheLookup counts a reference cache lookup
func (m *Metrics) CacheLookup(kind, outcome string) {
	m.cacheLookups.WithLabelValues(kind, outcome).Inc()
}

// RateLimited counts a rejected request
func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}

// Invalidated counts a cache generation bump
func (m *Metrics) Invalidated(country string) {
	m.invalidations.WithLabelValues(country).Inc()
}

// PublishFailed counts an event that failed delivery
func (m *Metrics) PublishFailed(topic string) {
	m.publishFailures.WithLabelValues(topic).Inc()
}
