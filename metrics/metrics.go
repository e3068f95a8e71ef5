// Package metrics exposes Store statistics as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitfsorg/fsdb-go/storage"
)

const (
	namespace      = "fsdb"
	storeSubsystem = "store"

	opLabelKey     = "op"
	resultLabelKey = "result"

	resultSuccess = "success"
	resultFailure = "failure"
)

// StoreMetrics implements storage.Metrics with Prometheus collectors.
type StoreMetrics struct {
	ops         *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	removedDirs prometheus.Counter
}

// Compile-time interface check.
var _ storage.Metrics = (*StoreMetrics)(nil)

// NewStoreMetrics creates unregistered Store collectors.
func NewStoreMetrics() *StoreMetrics {
	return &StoreMetrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "operations_total",
			Help:      "Number of store operations by type and result",
		}, []string{opLabelKey, resultLabelKey}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "operation_duration_seconds",
			Help:      "Store operation handling time",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{opLabelKey}),
		removedDirs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "removed_dirs_total",
			Help:      "Number of empty directories removed by delete cleanup",
		}),
	}
}

// Register adds all collectors to r.
func (m *StoreMetrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.ops, m.duration, m.removedDirs} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// AddOp implements storage.Metrics.
func (m *StoreMetrics) AddOp(op string, success bool, d time.Duration) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.ops.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// AddRemovedDirs implements storage.Metrics.
func (m *StoreMetrics) AddRemovedDirs(n int) {
	m.removedDirs.Add(float64(n))
}
