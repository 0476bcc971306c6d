// Package metrics exposes Prometheus instrumentation for the phone service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "phoneform"

// Metrics holds the collectors registered for one service instance.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Validations     *prometheus.CounterVec
	Formats         *prometheus.CounterVec
	Submissions     *prometheus.CounterVec
}

// New registers the phone service collectors with reg. A nil reg uses a fresh
// registry so tests and multiple servers never collide.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status_code"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Phone validations by constraint type and outcome.",
		}, []string{"type", "outcome"}), // outcome: "valid", "violation"

		Formats: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formats_total",
			Help:      "Phone format requests by target format and outcome.",
		}, []string{"format", "outcome"}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Phone form submissions by widget and outcome.",
		}, []string{"widget", "outcome"}),
	}
}

// ObserveValidation counts one validation.
func (m *Metrics) ObserveValidation(constraintType string, violations int) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(constraintType, outcome(violations == 0, "valid", "violation")).Inc()
}

// ObserveFormat counts one format request.
func (m *Metrics) ObserveFormat(format string, ok bool) {
	if m == nil {
		return
	}
	m.Formats.WithLabelValues(format, outcome(ok, "ok", "failed")).Inc()
}

// ObserveSubmission counts one form submission.
func (m *Metrics) ObserveSubmission(widget string, ok bool) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(widget, outcome(ok, "ok", "invalid")).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies labelled by chi route
// pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
	})
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
