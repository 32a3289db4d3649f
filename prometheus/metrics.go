// Package prometheus exports crawl counters in the Prometheus text format.
// A crawl is a batch job, so the metrics are written to a textfile for the
// node exporter's textfile collector instead of being served.
package prometheus

import (
	"time"

	"github.com/fwojciec/mos/crawl"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mos"

// Metrics counts crawl outcomes from progress events.
type Metrics struct {
	registry *prometheus.Registry

	images   *prometheus.CounterVec
	records  *prometheus.CounterVec
	archives *prometheus.CounterVec
	bytes    prometheus.Counter
	retries  prometheus.Counter
	lastRun  prometheus.Gauge
}

// NewMetrics creates Metrics registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_total",
			Help:      "Images processed, by outcome.",
		}, []string{"status"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_pages_total",
			Help:      "Record pages processed, by outcome.",
		}, []string{"status"}),
		archives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archives_total",
			Help:      "Archive URLs processed, by outcome.",
		}, []string{"status"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bytes_total",
			Help:      "Bytes of image data written.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Requests retried after transport failures.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Time the metrics were last written.",
		}),
	}
	m.registry.MustRegister(m.images, m.records, m.archives, m.bytes, m.retries, m.lastRun)
	return m
}

// Observe updates the counters for one progress event. It is safe for
// concurrent use.
func (m *Metrics) Observe(e crawl.ProgressEvent) {
	switch e.Type {
	case crawl.ProgressSaved:
		m.images.WithLabelValues("downloaded").Inc()
		m.bytes.Add(float64(e.Bytes))
	case crawl.ProgressSkipped:
		m.images.WithLabelValues("skipped").Inc()
	case crawl.ProgressFailed:
		m.images.WithLabelValues("failed").Inc()
	case crawl.ProgressRecord:
		m.records.WithLabelValues("ok").Inc()
	case crawl.ProgressRecordFailed:
		m.records.WithLabelValues("failed").Inc()
	case crawl.ProgressFinished:
		m.archives.WithLabelValues("ok").Inc()
	case crawl.ProgressArchiveFailed:
		m.archives.WithLabelValues("failed").Inc()
	case crawl.ProgressRetry:
		m.retries.Inc()
	}
}

// Gatherer returns the registry holding the metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	m.lastRun.Set(float64(time.Now().Unix()))
	return prometheus.WriteToTextfile(path, m.registry)
}
