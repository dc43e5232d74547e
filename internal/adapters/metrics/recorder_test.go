package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/adapters/metrics"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
)

var _ ports.MetricsRecorder = (*metrics.Recorder)(nil)

func TestRecorder_ObserveStats(t *testing.T) {
	r := metrics.New("")

	var stats domain.Stats
	stats.TypeSizes[domain.CacheDXVK] = 100
	stats.TypeCounts[domain.CacheDXVK] = 2
	stats.TypeSizes[domain.CacheFossilize] = 300
	stats.TypeCounts[domain.CacheFossilize] = 1
	stats.GameCount = 2
	stats.OldestDays = 40
	r.ObserveStats(stats)

	expected := `
# HELP nvshader_cache_bytes Bytes on disk per cache type.
# TYPE nvshader_cache_bytes gauge
nvshader_cache_bytes{type="dxvk"} 100
nvshader_cache_bytes{type="fossilize"} 300
nvshader_cache_bytes{type="mesa"} 0
nvshader_cache_bytes{type="nvidia"} 0
nvshader_cache_bytes{type="vkd3d"} 0
# HELP nvshader_games Distinct games with at least one cache unit.
# TYPE nvshader_games gauge
nvshader_games 2
# HELP nvshader_oldest_unit_age_days Age in days of the least recently modified cache unit.
# TYPE nvshader_oldest_unit_age_days gauge
nvshader_oldest_unit_age_days 40
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"nvshader_cache_bytes", "nvshader_games", "nvshader_oldest_unit_age_days"))
}

func TestRecorder_Operations(t *testing.T) {
	r := metrics.New("")

	r.ObserveScan(250*time.Millisecond, 3)
	r.ObserveEviction("max_age", 4, 1)
	r.ObserveEviction("max_age", 1, 0)
	r.ObservePrewarm(domain.PrewarmResult{Completed: 2, Failed: 1, Total: 3})

	expected := `
# HELP nvshader_evicted_units_total Cache units processed by eviction, by policy and outcome.
# TYPE nvshader_evicted_units_total counter
nvshader_evicted_units_total{outcome="failed",policy="max_age"} 1
nvshader_evicted_units_total{outcome="removed",policy="max_age"} 5
# HELP nvshader_prewarm_units_total Cache units processed by prewarm, by outcome.
# TYPE nvshader_prewarm_units_total counter
nvshader_prewarm_units_total{outcome="completed"} 2
nvshader_prewarm_units_total{outcome="failed"} 1
nvshader_prewarm_units_total{outcome="skipped"} 0
# HELP nvshader_scan_errors_total Non-fatal errors encountered while scanning.
# TYPE nvshader_scan_errors_total counter
nvshader_scan_errors_total 3
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"nvshader_evicted_units_total", "nvshader_prewarm_units_total", "nvshader_scan_errors_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(r.Registry(), "nvshader_scan_duration_seconds"))
}

func TestRecorder_Flush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "nvshader.prom")
	r := metrics.New(path)
	r.ObserveStats(domain.Stats{GameCount: 5})

	require.NoError(t, r.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nvshader_games 5")
}

func TestRecorder_FlushDisabled(t *testing.T) {
	assert.NoError(t, metrics.New("").Flush())
}

func TestRecorder_FlushFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	r := metrics.New(filepath.Join(blocker, "nvshader.prom"))
	err := r.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMetricsWriteFailed.Error())
}
