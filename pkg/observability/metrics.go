package observability

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "algoviz"

// Metrics groups the collectors fed by driver hooks.
type Metrics struct {
	Ticks     *prometheus.CounterVec
	Completed *prometheus.CounterVec
	Status    *prometheus.CounterVec
	Active    *prometheus.GaugeVec
	Latency   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of published snapshots.",
		}, []string{"module"}),
		Completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Runs that reached a terminal phase, by phase.",
		}, []string{"module", "phase"}),
		Status: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Driver status transitions.",
		}, []string{"from", "to"}),
		Active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_drivers",
			Help:      "Live drivers held in memory.",
		}, []string{"module"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent producing one snapshot.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"module"}),
	}
	reg.MustRegister(m.Ticks, m.Completed, m.Status, m.Active, m.Latency)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(_ context.Context, e *domain.TickEvent) {
			m.Ticks.WithLabelValues(e.Module).Inc()
			m.Latency.WithLabelValues(e.Module).Observe(e.Duration.Seconds())
		},
		OnStatusChange: func(_ context.Context, e *domain.StatusEvent) {
			m.Status.WithLabelValues(e.From, e.To).Inc()
		},
		OnComplete: func(_ context.Context, e *domain.TickEvent) {
			m.Completed.WithLabelValues(e.Module, string(e.Phase)).Inc()
		},
	}
}

// DriverOpened implements session.Observer.
func (m *Metrics) DriverOpened(module string) {
	m.Active.WithLabelValues(module).Inc()
}

// DriverClosed implements session.Observer.
func (m *Metrics) DriverClosed(module string) {
	m.Active.WithLabelValues(module).Dec()
}
