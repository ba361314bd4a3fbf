package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"filesort/internal/organizer"
	"filesort/internal/undo"
)

// Recorder accumulates counters for the runs of one process and exports them
// in the Prometheus text format, suitable for node_exporter's textfile
// collector.
type Recorder struct {
	registry *prometheus.Registry

	Runs           *prometheus.CounterVec
	FilesProcessed *prometheus.CounterVec
	BytesMoved     prometheus.Counter
	Restores       *prometheus.CounterVec
	LastRun        prometheus.Gauge
	PendingUndo    prometheus.Gauge

	now func() time.Time
}

// NewRecorder registers the filesort metrics on a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filesort_runs_total",
			Help: "Completed runs by mode.",
		}, []string{"mode"}), // mode: organize, dry_run, undo
		FilesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filesort_files_processed_total",
			Help: "Files handled by organize runs.",
		}, []string{"category", "status"}), // status: moved, planned, failed
		BytesMoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "filesort_bytes_moved_total",
			Help: "Bytes relocated by organize runs.",
		}),
		Restores: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filesort_restores_total",
			Help: "Move log entries handled by undo runs.",
		}, []string{"status"}), // status: restored, skipped, failed
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "filesort_last_run_timestamp_seconds",
			Help: "Unix time of the most recent run.",
		}),
		PendingUndo: factory.NewGauge(prometheus.GaugeOpts{
			Name: "filesort_pending_undo_entries",
			Help: "Entries left in the move log after the most recent undo.",
		}),
		now: time.Now,
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveOrganize records an organize or dry run.
func (r *Recorder) ObserveOrganize(result *organizer.Result, dryRun bool) {
	if r == nil || result == nil {
		return
	}
	mode := "organize"
	if dryRun {
		mode = "dry_run"
	}
	r.Runs.WithLabelValues(mode).Inc()
	for category, count := range result.Counts {
		r.FilesProcessed.WithLabelValues(category, "moved").Add(float64(count))
	}
	for _, planned := range result.Planned {
		r.FilesProcessed.WithLabelValues(planned.Category, "planned").Inc()
	}
	if result.Skipped > 0 {
		r.FilesProcessed.WithLabelValues("", "failed").Add(float64(result.Skipped))
	}
	r.BytesMoved.Add(float64(result.BytesMoved))
	r.LastRun.Set(float64(r.now().Unix()))
}

// ObserveUndo records an undo run.
func (r *Recorder) ObserveUndo(result *undo.Result) {
	if r == nil || result == nil {
		return
	}
	r.Runs.WithLabelValues("undo").Inc()
	r.Restores.WithLabelValues("restored").Add(float64(len(result.Restored)))
	r.Restores.WithLabelValues("skipped").Add(float64(len(result.Skipped)))
	r.Restores.WithLabelValues("failed").Add(float64(len(result.Failed)))
	r.PendingUndo.Set(float64(len(result.Failed)))
	r.LastRun.Set(float64(r.now().Unix()))
}

// WriteTextfile atomically writes the current metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
