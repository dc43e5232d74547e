package domain

import (
	"runtime"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// NVIDIAMode controls whether NVIDIA roots are scanned.
type NVIDIAMode int

const (
	// NVIDIAAuto scans NVIDIA roots only when an NVIDIA GPU is detected.
	NVIDIAAuto NVIDIAMode = iota
	// NVIDIAAlways scans NVIDIA roots unconditionally.
	NVIDIAAlways
	// NVIDIANever skips NVIDIA roots.
	NVIDIANever
)

var nvidiaModeNames = []string{"auto", "always", "never"}

func (m NVIDIAMode) String() string {
	if m < 0 || int(m) >= len(nvidiaModeNames) {
		return "unknown"
	}
	return nvidiaModeNames[m]
}

// ParseNVIDIAMode converts a config string into an NVIDIAMode.
func ParseNVIDIAMode(s string) (NVIDIAMode, error) {
	if s == "" {
		return NVIDIAAuto, nil
	}
	for i, n := range nvidiaModeNames {
		if strings.EqualFold(n, s) {
			return NVIDIAMode(i), nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidParam, "unknown nvidia mode"), "mode", s)
}

// Settings is the resolved runtime configuration.
type Settings struct {
	Scan        ScanSettings
	Prewarm     PrewarmSettings
	Retention   RetentionSettings
	Logging     LoggingSettings
	Layouts     map[CacheType]LayoutRule
	StateDir    string
	MetricsFile string
}

// ScanSettings tunes the scanner.
type ScanSettings struct {
	Workers     int
	UnitTimeout time.Duration
	NVIDIA      NVIDIAMode
	ExtraRoots  map[CacheType][]string
}

// PrewarmSettings tunes the replay invoker.
type PrewarmSettings struct {
	Binary  string
	Timeout time.Duration
	Threads int
}

// RetentionSettings is the policy applied by "clean --policy" and watch mode.
// Zero values disable the respective limit.
type RetentionSettings struct {
	MaxAgeDays   int
	MaxSizeBytes int64
}

// LoggingSettings selects the log level and format.
type LoggingSettings struct {
	Level  string
	Format string
}

// Default tuning values.
const (
	DefaultUnitTimeout    = 30 * time.Second
	DefaultPrewarmTimeout = 10 * time.Minute
)

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Scan: ScanSettings{
			Workers:     runtime.NumCPU(),
			UnitTimeout: DefaultUnitTimeout,
			NVIDIA:      NVIDIAAuto,
			ExtraRoots:  map[CacheType][]string{},
		},
		Prewarm: PrewarmSettings{
			Binary:  ReplayBinary,
			Timeout: DefaultPrewarmTimeout,
			Threads: runtime.NumCPU(),
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "pretty",
		},
		Layouts: DefaultLayouts(),
	}
}
