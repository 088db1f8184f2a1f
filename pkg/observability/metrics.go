package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the action engine with Prometheus collectors.
type Metrics struct {
	resolutions *prometheus.CounterVec
	executions  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scals",
			Subsystem: "actions",
			Name:      "resolutions_total",
			Help:      "Action resolutions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scals",
			Subsystem: "actions",
			Name:      "executions_total",
			Help:      "Action executions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scals",
			Subsystem: "actions",
			Name:      "execution_duration_seconds",
			Help:      "Action execution latency by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.resolutions, m.executions, m.duration)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveResolve records one resolution attempt.
func (m *Metrics) ObserveResolve(kind string, err error) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(kind, outcome(err)).Inc()
}

// ObserveExecute records one execution attempt.
func (m *Metrics) ObserveExecute(kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(kind, outcome(err)).Inc()
	m.duration.WithLabelValues(kind).Observe(d.Seconds())
}
