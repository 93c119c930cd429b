// Package metrics collects run metrics on a private Prometheus registry and
// writes them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/selimozcann/SiteHunter/internal/model"
)

// Check outcomes.
const (
	OutcomePassed = "passed"
	OutcomeFound  = "found"
	OutcomeError  = "error"
	OutcomePanic  = "panic"
)

// Metrics holds the collectors for one run. A nil *Metrics discards every
// observation.
type Metrics struct {
	registry *prometheus.Registry

	checksTotal   *prometheus.CounterVec
	findingsTotal *prometheus.CounterVec
	checkSeconds  *prometheus.HistogramVec
	runSeconds    prometheus.Gauge
	baselineLoad  prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitehunter_checks_total",
			Help: "Checks executed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		findingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitehunter_findings_total",
			Help: "Findings reported, by severity.",
		}, []string{"severity"}),
		checkSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitehunter_check_duration_seconds",
			Help:    "Wall time spent in each check.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),
		runSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitehunter_run_duration_seconds",
			Help: "Wall time of the whole run.",
		}),
		baselineLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitehunter_homepage_load_seconds",
			Help: "Homepage load time measured before the checks ran.",
		}),
	}
	m.registry.MustRegister(m.checksTotal, m.findingsTotal, m.checkSeconds, m.runSeconds, m.baselineLoad)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveCheck records one check execution.
func (m *Metrics) ObserveCheck(kind model.Kind, outcome string, d time.Duration, findings []model.Finding) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(string(kind), outcome).Inc()
	m.checkSeconds.WithLabelValues(string(kind)).Observe(d.Seconds())
	for _, f := range findings {
		m.findingsTotal.WithLabelValues(string(f.Severity)).Inc()
	}
}

// ObserveBaseline records the initial homepage load.
func (m *Metrics) ObserveBaseline(d time.Duration) {
	if m == nil {
		return
	}
	m.baselineLoad.Set(d.Seconds())
}

// ObserveRun records the total run time.
func (m *Metrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.runSeconds.Set(d.Seconds())
}

// WriteTextfile writes every collected metric to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
