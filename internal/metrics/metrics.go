// Package metrics exports run statistics in the Prometheus text format so
// a node-exporter textfile collector can pick them up.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/julianshen/firmdiag/internal/output"
)

// Registry holds the firmdiag metrics on a private Prometheus registry.
type Registry struct {
	FilesScanned     *prometheus.GaugeVec
	FunctionRecords  *prometheus.GaugeVec
	PinsResolved     prometheus.Gauge
	PinsUnresolved   prometheus.Gauge
	BatchFailed      *prometheus.GaugeVec
	ArtifactsWritten *prometheus.CounterVec
	ArtifactFailures *prometheus.CounterVec
	LastRun          prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.FilesScanned = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "firmdiag_files_scanned",
			Help: "Source files scanned by the last run",
		},
		[]string{"batch"},
	)
	r.FunctionRecords = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "firmdiag_function_records",
			Help: "Function records extracted by the last run, duplicates included",
		},
		[]string{"batch"},
	)
	r.PinsResolved = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "firmdiag_pins_resolved",
			Help: "Pin roles bound by the pin configuration",
		},
	)
	r.PinsUnresolved = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "firmdiag_pins_unresolved",
			Help: "Pin roles rendered as placeholders",
		},
	)
	r.BatchFailed = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "firmdiag_batch_failed",
			Help: "1 when the batch could not be built",
		},
		[]string{"batch"},
	)
	r.ArtifactsWritten = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "firmdiag_artifacts_written_total",
			Help: "Artifacts written",
		},
		[]string{"batch"},
	)
	r.ArtifactFailures = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "firmdiag_artifact_failures_total",
			Help: "Artifacts that could not be rendered or written",
		},
		[]string{"batch"},
	)
	r.LastRun = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "firmdiag_last_run_timestamp_seconds",
			Help: "Unix time of the last run",
		},
	)
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Observe records a run report taken at time now.
func (r *Registry) Observe(report *output.Report, now time.Time) {
	for _, b := range report.Batches {
		failed := 0.0
		if b.Error != "" {
			failed = 1
		}
		r.BatchFailed.WithLabelValues(b.Name).Set(failed)
		if b.Error != "" {
			continue
		}
		r.FilesScanned.WithLabelValues(b.Name).Set(float64(b.FilesScanned))
		r.FunctionRecords.WithLabelValues(b.Name).Set(float64(b.Records))
		r.ArtifactsWritten.WithLabelValues(b.Name).Add(float64(len(b.Written)))
		r.ArtifactFailures.WithLabelValues(b.Name).Add(float64(len(b.Failures)))
		if b.PinsResolved+b.PinsUnresolved > 0 {
			r.PinsResolved.Set(float64(b.PinsResolved))
			r.PinsUnresolved.Set(float64(b.PinsUnresolved))
		}
	}
	r.LastRun.Set(float64(now.Unix()))
}

// WriteTextfile writes the metrics to path in the node-exporter textfile
// format. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, r.GetPrometheusRegistry()); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
