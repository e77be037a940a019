// Package metrics records per-operation statistics for a filesystem.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the filesystem operation collectors.
type Metrics struct {
	Operations *prometheus.CounterVec
	Latency    *prometheus.SummaryVec
	BytesRead  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smallfs_operations_total",
			Help: "Number of filesystem operations by operation and result",
		}, []string{"op", "result"}),
		Latency: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name: "smallfs_operation_latency_seconds",
			Help: "Latency of filesystem operations in seconds",
		}, []string{"op"}),
		BytesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smallfs_read_bytes_total",
			Help: "Bytes returned by reads, by path",
		}, []string{"path"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Operations, m.Latency, m.BytesRead} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Observe records one operation.
func (m *Metrics) Observe(op string, dt time.Duration, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Operations.WithLabelValues(op, result).Inc()
	m.Latency.WithLabelValues(op).Observe(dt.Seconds())
}
