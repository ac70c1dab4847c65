package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SweepMetrics are the prometheus instruments updated by the sweeper.
type SweepMetrics struct {
	Sweeps    prometheus.Counter
	Escalated prometheus.Counter
	Warned    prometheus.Counter
	Failures  prometheus.Counter
	Duration  prometheus.Histogram
}

// NewSweepMetrics creates the sweeper instruments and registers them on reg.
// A nil reg leaves them unregistered.
func NewSweepMetrics(reg prometheus.Registerer) *SweepMetrics {
	m := &SweepMetrics{
		Sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "officeflow",
			Name:      "sweeps_total",
			Help:      "Number of escalation sweeps run.",
		}),
		Escalated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "officeflow",
			Name:      "tasks_escalated_total",
			Help:      "Tasks handed one level up by the sweeper.",
		}),
		Warned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "officeflow",
			Name:      "tasks_warned_total",
			Help:      "Tasks flagged as severely overdue by the sweeper.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "officeflow",
			Name:      "sweep_failures_total",
			Help:      "Tasks the sweeper failed to update.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "officeflow",
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of one escalation sweep.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Sweeps, m.Escalated, m.Warned, m.Failures, m.Duration)
	}
	return m
}
