package ports

import (
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
)

// MetricsRecorder records inventory and operation metrics.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type MetricsRecorder interface {
	// ObserveStats publishes the current inventory totals.
	ObserveStats(stats domain.Stats)
	// ObserveScan records a completed scan.
	ObserveScan(duration time.Duration, errors int)
	// ObserveEviction records the outcome of an eviction operation.
	ObserveEviction(policy string, removed, failed int)
	// ObservePrewarm records the outcome of a prewarm batch.
	ObservePrewarm(result domain.PrewarmResult)
	// Flush writes the metrics to their sink, if one is configured.
	Flush() error
}
