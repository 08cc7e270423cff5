// internal/monitor/metrics.go
package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the advisory gauges and counters. They inform operator
// tuning of --threads and --batch-size; nothing in the pipeline depends on
// them.
type Metrics struct {
	CPUUtil        prometheus.Gauge
	ReadBytesPerS  prometheus.Gauge
	WriteBytesPerS prometheus.Gauge
	PendingGauge   prometheus.Gauge

	Batches      prometheus.Counter
	Records      prometheus.Counter
	BatchSeconds prometheus.Histogram
}

// NewMetrics registers the metric set on reg (pass a fresh
// prometheus.NewRegistry() per process; tests can pass their own).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CPUUtil: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fqdx", Name: "cpu_utilization",
			Help: "Whole-machine CPU utilization sampled from /proc/stat (0..1).",
		}),
		ReadBytesPerS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fqdx", Name: "disk_read_bytes_per_second",
			Help: "Process storage-read throughput sampled from /proc/self/io.",
		}),
		WriteBytesPerS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fqdx", Name: "disk_write_bytes_per_second",
			Help: "Process storage-write throughput sampled from /proc/self/io.",
		}),
		PendingGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fqdx", Name: "collector_pending_results",
			Help: "Out-of-order results buffered by the collector.",
		}),
		Batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fqdx", Name: "batches_dispatched_total",
			Help: "Batches handed to the worker pool.",
		}),
		Records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fqdx", Name: "records_dispatched_total",
			Help: "Records handed to the worker pool.",
		}),
		BatchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fqdx", Name: "batch_processing_seconds",
			Help:    "Per-batch transform wall time.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	reg.MustRegister(
		m.CPUUtil, m.ReadBytesPerS, m.WriteBytesPerS, m.PendingGauge,
		m.Batches, m.Records, m.BatchSeconds,
	)
	return m
}

// Metrics implements pipeline.Observer.

func (m *Metrics) BatchDispatched(records int) {
	m.Batches.Inc()
	m.Records.Add(float64(records))
}

func (m *Metrics) BatchDone(d time.Duration) {
	m.BatchSeconds.Observe(d.Seconds())
}

func (m *Metrics) PendingResults(buffered int) {
	m.PendingGauge.Set(float64(buffered))
}
