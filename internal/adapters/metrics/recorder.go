// Package metrics exports inventory and operation metrics in Prometheus format.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

const namespace = "nvshader"

// Recorder implements ports.MetricsRecorder on a private registry. Flush
// writes the registry to a node_exporter textfile when a path is set.
type Recorder struct {
	registry *prometheus.Registry
	file     string

	cacheBytes *prometheus.GaugeVec
	cacheUnits *prometheus.GaugeVec
	games      prometheus.Gauge
	oldestDays prometheus.Gauge

	scanDuration prometheus.Histogram
	scanErrors   prometheus.Counter
	evictions    *prometheus.CounterVec
	prewarms     *prometheus.CounterVec
}

// New creates a Recorder. An empty file disables Flush.
func New(file string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		file:     file,
		cacheBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_bytes",
			Help:      "Bytes on disk per cache type.",
		}, []string{"type"}),
		cacheUnits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_units",
			Help:      "Cache units per cache type.",
		}, []string{"type"}),
		games: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "games",
			Help:      "Distinct games with at least one cache unit.",
		}),
		oldestDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "oldest_unit_age_days",
			Help:      "Age in days of the least recently modified cache unit.",
		}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of full cache scans.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		scanErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_errors_total",
			Help:      "Non-fatal errors encountered while scanning.",
		}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evicted_units_total",
			Help:      "Cache units processed by eviction, by policy and outcome.",
		}, []string{"policy", "outcome"}),
		prewarms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prewarm_units_total",
			Help:      "Cache units processed by prewarm, by outcome.",
		}, []string{"outcome"}),
	}

	r.registry.MustRegister(
		r.cacheBytes, r.cacheUnits, r.games, r.oldestDays,
		r.scanDuration, r.scanErrors, r.evictions, r.prewarms,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStats publishes the current inventory totals.
func (r *Recorder) ObserveStats(stats domain.Stats) {
	for _, t := range domain.AllCacheTypes() {
		r.cacheBytes.WithLabelValues(t.String()).Set(float64(stats.SizeOf(t)))
		r.cacheUnits.WithLabelValues(t.String()).Set(float64(stats.CountOf(t)))
	}
	r.games.Set(float64(stats.GameCount))
	r.oldestDays.Set(float64(stats.OldestDays))
}

// ObserveScan records a completed scan.
func (r *Recorder) ObserveScan(duration time.Duration, errors int) {
	r.scanDuration.Observe(duration.Seconds())
	r.scanErrors.Add(float64(errors))
}

// ObserveEviction records the outcome of an eviction operation.
func (r *Recorder) ObserveEviction(policy string, removed, failed int) {
	r.evictions.WithLabelValues(policy, "removed").Add(float64(removed))
	r.evictions.WithLabelValues(policy, "failed").Add(float64(failed))
}

// ObservePrewarm records the outcome of a prewarm batch.
func (r *Recorder) ObservePrewarm(result domain.PrewarmResult) {
	r.prewarms.WithLabelValues(domain.OutcomeCompleted.String()).Add(float64(result.Completed))
	r.prewarms.WithLabelValues(domain.OutcomeFailed.String()).Add(float64(result.Failed))
	r.prewarms.WithLabelValues(domain.OutcomeSkipped.String()).Add(float64(result.Skipped))
}

// Flush writes every metric to the textfile. It is a no-op without a file.
func (r *Recorder) Flush() error {
	if r.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.file), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", r.file)
	}
	if err := prometheus.WriteToTextfile(r.file, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", r.file)
	}
	return nil
}
