// Package metrics exposes Prometheus collectors for the scoring engine and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spigell/ats-scorer/internal/ats"
)

// Collector implements ats.Observer and records HTTP metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	stageOutcomes *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	scoreTotal    prometheus.Histogram
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewCollector creates the collectors and registers them on a fresh registry.
func NewCollector() *Collector {
	return NewCollectorWith(prometheus.NewRegistry())
}

// NewCollectorWith registers the collectors on reg. It panics on duplicate registration.
func NewCollectorWith(reg *prometheus.Registry) *Collector {
	c := &Collector{
		gatherer: reg,
		stageOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_stage_outcomes_total",
				Help: "Scoring pipeline stage executions by outcome",
			},
			[]string{"stage", "outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ats_stage_duration_seconds",
				Help:    "Scoring pipeline stage duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"stage"},
		),
		scoreTotal: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ats_score_total",
				Help:    "Distribution of total ATS scores (0-100)",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"route", "method"},
		),
	}

	reg.MustRegister(c.stageOutcomes, c.stageDuration, c.scoreTotal, c.httpRequests, c.httpDuration)
	return c
}

// ObserveStage implements ats.Observer.
func (c *Collector) ObserveStage(report ats.StageReport) {
	c.stageOutcomes.WithLabelValues(report.Stage, string(report.Outcome)).Inc()
	c.stageDuration.WithLabelValues(report.Stage).Observe(report.Duration.Seconds())
}

// ObserveAnalysis implements ats.Observer.
func (c *Collector) ObserveAnalysis(analysis *ats.Analysis) {
	if analysis == nil {
		return
	}
	c.scoreTotal.Observe(float64(analysis.ScoreTotal))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations labelled by chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = "unmatched"
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
