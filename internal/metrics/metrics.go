// Package metrics records batch-run metrics in a private Prometheus registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

const namespace = "sitecheck"

// Metrics implements ports.Observer.
type Metrics struct {
	registry *prometheus.Registry

	checks   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	total    prometheus.Gauge
	checked  prometheus.Gauge
	inFlight prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Finished link checks by terminal status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Elapsed time of a link check attempt.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		}, []string{"status"}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Links in the current session.",
		}),
		checked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "links_checked",
			Help:      "Links that reached a terminal state.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checks_in_flight",
			Help:      "Link checks currently running.",
		}),
	}

	m.registry.MustRegister(m.checks, m.duration, m.total, m.checked, m.inFlight)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Observe(ev domain.Event) {
	switch ev.Kind {
	case domain.EventStarted:
		m.total.Set(float64(ev.Total))
		m.checked.Set(0)
		m.inFlight.Set(0)
	case domain.EventChecking:
		m.inFlight.Inc()
	case domain.EventFinished:
		status := string(ev.Record.Status)
		m.inFlight.Dec()
		m.checked.Set(float64(ev.Checked))
		m.checks.WithLabelValues(status).Inc()
		m.duration.WithLabelValues(status).Observe(ev.Record.Duration.Seconds())
	case domain.EventDone:
		m.checked.Set(float64(ev.Checked))
	}
}

// WriteFile writes all metrics in the text exposition format, for the node
// exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
