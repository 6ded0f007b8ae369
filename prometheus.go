package threadpool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics is a MetricsPolicy that exports pool activity as Prometheus
// collectors. The collectors are registered on the given registerer at
// construction, so build one PromMetrics per pool.
type PromMetrics struct {
	executed prometheus.Counter
	queued   prometheus.Gauge
}

// NewPromMetrics registers the pool collectors on reg and returns the
// adapter. Pass it to the pool via Options.Metrics.
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	m := &PromMetrics{
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "threadpool",
			Name:      "jobs_executed_total",
			Help:      "Total number of jobs executed by the pool.",
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "threadpool",
			Name:      "jobs_queued",
			Help:      "Number of jobs currently waiting in the pool queue.",
		}),
	}
	reg.MustRegister(m.executed, m.queued)
	return m
}

func (m *PromMetrics) IncExecuted() { m.executed.Inc() }
func (m *PromMetrics) IncQueued()   { m.queued.Inc() }
func (m *PromMetrics) DecQueued()   { m.queued.Dec() }
