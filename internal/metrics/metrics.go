// Package metrics defines the Prometheus collectors for the Wayfarer API.
// Collectors live on a dedicated registry so tests can create as many
// instances as they like without clashing on the global one.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wayfarer"

// Plan outcomes.
const (
	OutcomePlanned = "planned"
	OutcomeEmpty   = "empty"
)

// Metrics holds every collector the API records to.
type Metrics struct {
	registry *prometheus.Registry

	plansGenerated  *prometheus.CounterVec
	planStops       prometheus.Histogram
	planWarnings    prometheus.Counter
	hoursLookups    *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		plansGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_generated_total",
			Help:      "Plans generated, by outcome (planned or empty).",
		}, []string{"outcome"}),
		planStops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_stops",
			Help:      "Number of stops in generated plans.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8},
		}),
		planWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_warnings_total",
			Help:      "Warnings attached to generated plans.",
		}),
		hoursLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hours_lookups_total",
			Help:      "Opening-hours evaluations, by resulting status.",
		}, []string{"status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.plansGenerated,
		m.planStops,
		m.planWarnings,
		m.hoursLookups,
		m.requestsTotal,
		m.requestDuration,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObservePlan records one generated plan.
func (m *Metrics) ObservePlan(stops, warnings int) {
	outcome := OutcomePlanned
	if stops == 0 {
		outcome = OutcomeEmpty
	}
	m.plansGenerated.WithLabelValues(outcome).Inc()
	m.planStops.Observe(float64(stops))
	m.planWarnings.Add(float64(warnings))
}

// ObserveHoursLookup records one hours evaluation by status kind.
func (m *Metrics) ObserveHoursLookup(status string) {
	m.hoursLookups.WithLabelValues(status).Inc()
}

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests and observes latency. The route label is the
// chi route pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
