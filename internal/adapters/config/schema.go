package config

import (
	"encoding/hex"
	"regexp"
	"slices"
	"strconv"
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// File is the on-disk shape of config.yaml. The koanf and yaml tags match so
// the rendered file loads back unchanged.
type File struct {
	Scan      ScanConfig              `koanf:"scan" yaml:"scan"`
	Prewarm   PrewarmConfig           `koanf:"prewarm" yaml:"prewarm"`
	Retention RetentionConfig         `koanf:"retention" yaml:"retention"`
	Logging   LoggingConfig           `koanf:"logging" yaml:"logging"`
	State     StateConfig             `koanf:"state" yaml:"state"`
	Metrics   MetricsConfig           `koanf:"metrics" yaml:"metrics"`
	Layouts   map[string]LayoutConfig `koanf:"layouts" yaml:"layouts"`
}

// ScanConfig is the "scan" section.
type ScanConfig struct {
	Workers     int                 `koanf:"workers" yaml:"workers"`
	UnitTimeout string              `koanf:"unit_timeout" yaml:"unit_timeout"`
	NVIDIA      string              `koanf:"nvidia" yaml:"nvidia"`
	ExtraRoots  map[string][]string `koanf:"extra_roots" yaml:"extra_roots,omitempty"`
}

// PrewarmConfig is the "prewarm" section.
type PrewarmConfig struct {
	Binary  string `koanf:"binary" yaml:"binary"`
	Timeout string `koanf:"timeout" yaml:"timeout"`
	Threads int    `koanf:"threads" yaml:"threads"`
}

// RetentionConfig is the "retention" section. Zero disables a limit.
type RetentionConfig struct {
	MaxAgeDays int    `koanf:"max_age_days" yaml:"max_age_days"`
	MaxSize    string `koanf:"max_size" yaml:"max_size"`
}

// LoggingConfig is the "logging" section.
type LoggingConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// StateConfig is the "state" section.
type StateConfig struct {
	Dir string `koanf:"dir" yaml:"dir"`
}

// MetricsConfig is the "metrics" section.
type MetricsConfig struct {
	File string `koanf:"file" yaml:"file"`
}

// LayoutConfig describes one cache type's on-disk layout.
type LayoutConfig struct {
	Match     string   `koanf:"match" yaml:"match"`
	Shape     string   `koanf:"shape" yaml:"shape"`
	Aggregate bool     `koanf:"aggregate" yaml:"aggregate"`
	Count     string   `koanf:"count" yaml:"count"`
	Magic     string   `koanf:"magic" yaml:"magic,omitempty"`
	MagicExt  string   `koanf:"magic_ext" yaml:"magic_ext,omitempty"`
	Ignore    []string `koanf:"ignore" yaml:"ignore"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"pretty", "json"}
)

// FromSettings converts resolved settings into their file form.
func FromSettings(s domain.Settings) File {
	f := File{
		Scan: ScanConfig{
			Workers:     s.Scan.Workers,
			UnitTimeout: s.Scan.UnitTimeout.String(),
			NVIDIA:      s.Scan.NVIDIA.String(),
		},
		Prewarm: PrewarmConfig{
			Binary:  s.Prewarm.Binary,
			Timeout: s.Prewarm.Timeout.String(),
			Threads: s.Prewarm.Threads,
		},
		Retention: RetentionConfig{
			MaxAgeDays: s.Retention.MaxAgeDays,
			MaxSize:    strconv.FormatInt(s.Retention.MaxSizeBytes, 10),
		},
		Logging: LoggingConfig{Level: s.Logging.Level, Format: s.Logging.Format},
		State:   StateConfig{Dir: s.StateDir},
		Metrics: MetricsConfig{File: s.MetricsFile},
		Layouts: make(map[string]LayoutConfig, len(s.Layouts)),
	}

	if len(s.Scan.ExtraRoots) > 0 {
		f.Scan.ExtraRoots = make(map[string][]string, len(s.Scan.ExtraRoots))
		for t, roots := range s.Scan.ExtraRoots {
			if len(roots) > 0 {
				f.Scan.ExtraRoots[t.String()] = roots
			}
		}
	}

	for t, rule := range s.Layouts {
		f.Layouts[t.String()] = LayoutConfig{
			Match:     rule.Match,
			Shape:     rule.Shape.String(),
			Aggregate: rule.Aggregate,
			Count:     rule.Count.String(),
			Magic:     hex.EncodeToString(rule.Magic),
			MagicExt:  rule.MagicExt,
			Ignore:    rule.Ignore,
		}
	}

	return f
}

// DefaultFile returns the built-in configuration in file form. Worker and
// thread counts are left at zero, which selects the CPU count.
func DefaultFile(stateDir string) File {
	s := domain.DefaultSettings()
	s.StateDir = stateDir
	f := FromSettings(s)
	f.Scan.Workers = 0
	f.Prewarm.Threads = 0
	return f
}

// Settings validates the file and converts it into resolved settings.
// Layouts absent from the file keep their built-in rules.
func (f File) Settings() (domain.Settings, error) {
	s := domain.DefaultSettings()

	if f.Scan.Workers < 0 {
		return s, invalid("scan.workers", f.Scan.Workers)
	}
	if f.Scan.Workers > 0 {
		s.Scan.Workers = f.Scan.Workers
	}
	d, err := duration(f.Scan.UnitTimeout, "scan.unit_timeout")
	if err != nil {
		return s, err
	}
	s.Scan.UnitTimeout = d
	if s.Scan.NVIDIA, err = domain.ParseNVIDIAMode(f.Scan.NVIDIA); err != nil {
		return s, zerr.Wrap(domain.ErrConfigInvalid, err.Error())
	}
	for name, roots := range f.Scan.ExtraRoots {
		t, err := domain.ParseCacheType(name)
		if err != nil {
			return s, invalid("scan.extra_roots", name)
		}
		s.Scan.ExtraRoots[t] = append(s.Scan.ExtraRoots[t], roots...)
	}

	if f.Prewarm.Binary != "" {
		s.Prewarm.Binary = f.Prewarm.Binary
	}
	if s.Prewarm.Timeout, err = duration(f.Prewarm.Timeout, "prewarm.timeout"); err != nil {
		return s, err
	}
	if f.Prewarm.Threads < 0 {
		return s, invalid("prewarm.threads", f.Prewarm.Threads)
	}
	if f.Prewarm.Threads > 0 {
		s.Prewarm.Threads = f.Prewarm.Threads
	}

	if f.Retention.MaxAgeDays < 0 {
		return s, invalid("retention.max_age_days", f.Retention.MaxAgeDays)
	}
	s.Retention.MaxAgeDays = f.Retention.MaxAgeDays
	if f.Retention.MaxSize != "" {
		if s.Retention.MaxSizeBytes, err = domain.ParseSize(f.Retention.MaxSize); err != nil {
			return s, invalid("retention.max_size", f.Retention.MaxSize)
		}
	}

	if f.Logging.Level != "" {
		if !slices.Contains(logLevels, f.Logging.Level) {
			return s, invalid("logging.level", f.Logging.Level)
		}
		s.Logging.Level = f.Logging.Level
	}
	if f.Logging.Format != "" {
		if !slices.Contains(logFormats, f.Logging.Format) {
			return s, invalid("logging.format", f.Logging.Format)
		}
		s.Logging.Format = f.Logging.Format
	}

	s.StateDir = f.State.Dir
	s.MetricsFile = f.Metrics.File

	for name, lc := range f.Layouts {
		t, err := domain.ParseCacheType(name)
		if err != nil {
			return s, invalid("layouts", name)
		}
		rule, err := lc.rule()
		if err != nil {
			return s, zerr.With(err, "type", name)
		}
		s.Layouts[t] = rule
	}

	return s, nil
}

func (lc LayoutConfig) rule() (domain.LayoutRule, error) {
	if _, err := regexp.Compile(lc.Match); err != nil {
		return domain.LayoutRule{}, invalid("layouts.match", lc.Match)
	}
	shape, err := domain.ParseShape(lc.Shape)
	if err != nil {
		return domain.LayoutRule{}, invalid("layouts.shape", lc.Shape)
	}
	count, err := domain.ParseCountRule(lc.Count)
	if err != nil {
		return domain.LayoutRule{}, invalid("layouts.count", lc.Count)
	}
	var magic []byte
	if lc.Magic != "" {
		if magic, err = hex.DecodeString(lc.Magic); err != nil {
			return domain.LayoutRule{}, invalid("layouts.magic", lc.Magic)
		}
	}
	return domain.LayoutRule{
		Match:     lc.Match,
		Shape:     shape,
		Aggregate: lc.Aggregate,
		Count:     count,
		Magic:     magic,
		MagicExt:  lc.MagicExt,
		Ignore:    lc.Ignore,
	}, nil
}

func duration(s, key string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, invalid(key, s)
	}
	return d, nil
}

func invalid(key string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "invalid value"), "key", key), "value", value)
}
