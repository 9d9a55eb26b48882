package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation results used as the "result" label.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultMiss  = "miss"
)

// Metrics holds the session store collectors.
type Metrics struct {
	operations   *prometheus.CounterVec
	pruned       prometheus.Counter
	saveDuration prometheus.Histogram
	entries      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cursorkeep_operations_total",
				Help: "Session store operations by kind and result.",
			},
			[]string{"op", "result"},
		),
		pruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cursorkeep_pruned_entries_total",
				Help: "Entries removed for exceeding the retention horizon.",
			},
		),
		saveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cursorkeep_save_duration_seconds",
				Help:    "Duration of full table saves.",
				Buckets: prometheus.DefBuckets,
			},
		),
		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cursorkeep_entries",
				Help: "Number of entries in the table at the last load.",
			},
		),
	}
	reg.MustRegister(m.operations, m.pruned, m.saveDuration, m.entries)
	return m
}

// ObserveOperation counts one operation.
func (m *Metrics) ObserveOperation(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObserveSave records the duration of a save.
func (m *Metrics) ObserveSave(d time.Duration) {
	if m == nil {
		return
	}
	m.saveDuration.Observe(d.Seconds())
}

// AddPruned counts removed entries.
func (m *Metrics) AddPruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pruned.Add(float64(n))
}

// SetEntries records the table size.
func (m *Metrics) SetEntries(n int) {
	if m == nil {
		return
	}
	m.entries.Set(float64(n))
}
