package splice

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric naming
const (
	MetricsNamespace = "splice"
	MetricsSubsystem = "handler"
	MetricCallsTotal = "calls_total"
	MetricCallsHelp  = "Handler dispatches by handler name and outcome."

	MetricLabelHandler = "handler"
	MetricLabelOutcome = "outcome"
)

// Dispatch outcomes
const (
	OutcomeAppended   = "appended"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
	OutcomeUnresolved = "unresolved"
)

// dispatchMetrics counts handler dispatches. A nil *dispatchMetrics is valid
// and records nothing.
type dispatchMetrics struct {
	calls *prometheus.CounterVec
}

func newDispatchMetrics(reg prometheus.Registerer) (*dispatchMetrics, error) {
	if reg == nil {
		return nil, nil
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystem,
		Name:      MetricCallsTotal,
		Help:      MetricCallsHelp,
	}, []string{MetricLabelHandler, MetricLabelOutcome})

	if err := reg.Register(calls); err != nil {
		return nil, err
	}
	return &dispatchMetrics{calls: calls}, nil
}

func (m *dispatchMetrics) observe(handler, outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(handler, outcome).Inc()
}
