package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "themefix"

// RunStats is the snapshot exported at the end of a rewrite run.
type RunStats struct {
	FilesScanned      int
	FilesSkipped      int
	FilesModified     int
	FileErrors        int
	TotalReplacements int
	ImportsAdded      int
	DryRun            bool
	DurationSeconds   float64
}

// RunMetrics holds the Prometheus gauges describing one rewrite run. Each
// instance owns its own registry so repeated runs in one process never
// collide on collector registration.
type RunMetrics struct {
	registry *prometheus.Registry

	filesScanned  prometheus.Gauge
	filesSkipped  prometheus.Gauge
	filesModified prometheus.Gauge
	fileErrors    prometheus.Gauge
	replacements  prometheus.Gauge
	importsAdded  prometheus.Gauge
	dryRun        prometheus.Gauge
	duration      prometheus.Gauge
	lastRun       prometheus.Gauge
}

// NewRunMetrics creates and registers the run gauges.
func NewRunMetrics() (*RunMetrics, error) {
	rm := &RunMetrics{
		registry:      prometheus.NewRegistry(),
		filesScanned:  newGauge("files_scanned", "Source files found under the scan root."),
		filesSkipped:  newGauge("files_skipped", "Source files skipped as generated, excluded, vendored or oversized."),
		filesModified: newGauge("files_modified", "Files with at least one replacement."),
		fileErrors:    newGauge("file_errors", "Files that could not be read or written."),
		replacements:  newGauge("replacements", "Literal replacements made."),
		importsAdded:  newGauge("imports_added", "Theme imports inserted."),
		dryRun:        newGauge("dry_run", "1 when the run did not write files."),
		duration:      newGauge("run_duration_seconds", "Wall time of the run."),
		lastRun:       newGauge("last_run_timestamp_seconds", "Unix time the run finished."),
	}

	collectors := []prometheus.Collector{
		rm.filesScanned, rm.filesSkipped, rm.filesModified, rm.fileErrors,
		rm.replacements, rm.importsAdded, rm.dryRun, rm.duration, rm.lastRun,
	}

	for _, c := range collectors {
		err := rm.registry.Register(c)
		if err != nil {
			return nil, fmt.Errorf("register run metric: %w", err)
		}
	}

	return rm, nil
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      name,
		Help:      help,
	})
}

// Observe copies stats into the gauges.
func (rm *RunMetrics) Observe(stats RunStats) {
	rm.filesScanned.Set(float64(stats.FilesScanned))
	rm.filesSkipped.Set(float64(stats.FilesSkipped))
	rm.filesModified.Set(float64(stats.FilesModified))
	rm.fileErrors.Set(float64(stats.FileErrors))
	rm.replacements.Set(float64(stats.TotalReplacements))
	rm.importsAdded.Set(float64(stats.ImportsAdded))
	rm.duration.Set(stats.DurationSeconds)
	rm.lastRun.SetToCurrentTime()

	if stats.DryRun {
		rm.dryRun.Set(1)
	} else {
		rm.dryRun.Set(0)
	}
}

// Gatherer exposes the underlying registry.
func (rm *RunMetrics) Gatherer() prometheus.Gatherer {
	return rm.registry
}

// WriteTextfile writes the gauges in the node_exporter textfile format.
func (rm *RunMetrics) WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, rm.registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}
