// Package metrics exposes analysis counters in the Prometheus exposition format.
package metrics

import (
	"github.com/myrjola/veritruth/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"time"
)

const namespace = "veritruth"

// Metrics holds the application collectors on a private registry. A nil *Metrics discards observations.
type Metrics struct {
	registry *prometheus.Registry
	analyses *prometheus.CounterVec
	failures prometheus.Counter
	rejected prometheus.Counter
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Successful analyses by verdict.",
		}, []string{"verdict"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_failures_total",
			Help:      "Analyses that failed because the engine could not be reached.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_rejected_total",
			Help:      "Analyses rejected because another analysis of the same session was in flight.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_call_duration_seconds",
			Help:      "Duration of analysis engine calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.analyses,
		m.failures,
		m.rejected,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAnalysis counts a successful engine call.
func (m *Metrics) ObserveAnalysis(verdict models.Verdict, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(string(verdict)).Inc()
	m.duration.WithLabelValues("success").Observe(elapsed.Seconds())
}

// ObserveFailure counts a failed engine call.
func (m *Metrics) ObserveFailure(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.failures.Inc()
	m.duration.WithLabelValues("failure").Observe(elapsed.Seconds())
}

// ObserveRejected counts an analysis refused by the single-flight guard.
func (m *Metrics) ObserveRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}
