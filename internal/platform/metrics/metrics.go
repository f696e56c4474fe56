// Package metrics owns the prometheus registry and the collectors the service reports into.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boutique_ops"

// Metrics groups every collector. A nil *Metrics accepts all calls and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	targetsGenerate *prometheus.CounterVec
	scheduleWrites  *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications handed to the notifier by kind and outcome.",
		}, []string{"kind", "outcome"}),
		targetsGenerate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "target_generations_total",
			Help:      "Monthly target generations by outcome.",
		}, []string{"outcome"}),
		scheduleWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_writes_total",
			Help:      "Schedule mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.cacheLookups,
		m.notifications,
		m.targetsGenerate,
		m.scheduleWrites,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// CacheHit implements cache.Recorder.
func (m *Metrics) CacheHit(name string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(name, "hit").Inc()
}

// CacheMiss implements cache.Recorder.
func (m *Metrics) CacheMiss(name string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(name, "miss").Inc()
}

// NotificationSent records a notification outcome ("published", "logged", "failed").
func (m *Metrics) NotificationSent(kind, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

// TargetGeneration records a generation outcome ("ok", "busy", "error").
func (m *Metrics) TargetGeneration(outcome string) {
	if m == nil {
		return
	}
	m.targetsGenerate.WithLabelValues(outcome).Inc()
}

// ScheduleWrite records a schedule mutation outcome ("ok", "locked", "conflict", "error").
func (m *Metrics) ScheduleWrite(operation, outcome string) {
	if m == nil {
		return
	}
	m.scheduleWrites.WithLabelValues(operation, outcome).Inc()
}
