package observability

import (
	"net/http"
	"time"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records the outcome of every check.
type Metrics struct {
	registry  *prometheus.Registry
	checks    *prometheus.CounterVec
	duration  prometheus.Histogram
	missing   *prometheus.GaugeVec
	unused    prometheus.Gauge
	variables prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envcheck_checks_total",
				Help: "Total number of environment checks",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "envcheck_check_duration_seconds",
			Help:    "Duration of environment checks",
			Buckets: prometheus.DefBuckets,
		}),
		missing: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "envcheck_missing_variables",
				Help: "Required variables missing in the last check, by group",
			},
			[]string{"group"},
		),
		unused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "envcheck_unused_variables",
			Help: "Env file entries not declared by any schema in the last check",
		}),
		variables: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "envcheck_declared_variables",
			Help: "Variables declared across all schemas in the last check",
		}),
	}
	m.registry.MustRegister(m.checks, m.duration, m.missing, m.unused, m.variables)
	return m
}

// Observe records a finished check.
func (m *Metrics) Observe(r *domain.Report, elapsed time.Duration) {
	if m == nil || r == nil {
		return
	}

	result := "ok"
	if !r.OK() {
		result = "failed"
	}
	m.checks.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())

	m.missing.Reset()
	for _, v := range r.Missing {
		group := v.Group
		if group == "" {
			group = "Other"
		}
		m.missing.WithLabelValues(group).Inc()
	}
	m.unused.Set(float64(len(r.Unused)))
	m.variables.Set(float64(r.Variables))
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
