package telemetry

import "github.com/prometheus/client_golang/prometheus"

// RuntimeMetrics are the per-runtime counters (ticks, operator
// evaluations, overflow errors, kill events), registered against one
// Server's private registry so metrics from independent runtimes in the
// same process (e.g. separate tests) never collide the way registering
// against prometheus's global default registry would.
type RuntimeMetrics struct {
	Ticks          prometheus.Counter
	OperatorEvals  prometheus.Counter
	OverflowErrors prometheus.Counter
	KillEvents     prometheus.Counter
}

// NewRuntimeMetrics registers and returns a fresh set of runtime counters
// against registry.
func NewRuntimeMetrics(registry *prometheus.Registry) *RuntimeMetrics {
	m := &RuntimeMetrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dbsp_runtime_ticks_total",
			Help: "Total circuit ticks stepped across all workers.",
		}),
		OperatorEvals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dbsp_runtime_operator_evals_total",
			Help: "Total operator evaluations across all workers.",
		}),
		OverflowErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dbsp_runtime_overflow_errors_total",
			Help: "Total KindOverflow errors observed across all workers.",
		}),
		KillEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dbsp_runtime_kill_events_total",
			Help: "Total times Handle.Kill was invoked.",
		}),
	}
	registry.MustRegister(m.Ticks, m.OperatorEvals, m.OverflowErrors, m.KillEvents)
	return m
}
