// Package config loads nvshader settings from defaults, config.yaml and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: NVSHADER_SCAN__UNIT_TIMEOUT sets scan.unit_timeout.
const EnvPrefix = "NVSHADER_"

// Loader implements ports.ConfigLoader with env > file > default precedence.
type Loader struct {
	getenv  func(string) string
	homeDir func() (string, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnv replaces the environment lookup used for XDG directories.
func WithEnv(getenv func(string) string) Option {
	return func(l *Loader) { l.getenv = getenv }
}

// WithHome fixes the home directory.
func WithHome(home string) Option {
	return func(l *Loader) {
		l.homeDir = func() (string, error) { return home, nil }
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{getenv: os.Getenv, homeDir: os.UserHomeDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves settings. An empty path selects the default location, which
// may be absent; an explicit path must exist.
func (l *Loader) Load(path string) (domain.Settings, error) {
	stateDir, err := l.DefaultStateDir()
	if err != nil {
		return domain.Settings{}, err
	}

	k := koanf.New(".")
	defaults, err := toMap(DefaultFile(stateDir))
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to build default config")
	}
	if err := k.Load(confmap.Provider(defaults, ""), nil); err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load default config")
	}

	explicit := path != ""
	if !explicit {
		if path, err = l.DefaultPath(); err != nil {
			return domain.Settings{}, err
		}
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return domain.Settings{}, withCause(zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, "config file is not accessible"), "path", path), err)
		}
	} else if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return domain.Settings{}, withCause(zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "config file is not valid YAML"), "path", path), err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load environment overrides")
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return domain.Settings{}, withCause(zerr.Wrap(domain.ErrConfigParseFailed, "config has the wrong shape"), err)
	}

	s, err := f.Settings()
	if err != nil {
		return domain.Settings{}, err
	}

	home, _ := l.homeDir()
	s.StateDir = expandHome(s.StateDir, home)
	s.MetricsFile = expandHome(s.MetricsFile, home)
	for t, roots := range s.Scan.ExtraRoots {
		for i, r := range roots {
			roots[i] = expandHome(r, home)
		}
		s.Scan.ExtraRoots[t] = roots
	}
	return s, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/nvshader/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func (l *Loader) DefaultPath() (string, error) {
	base, err := l.xdg("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, domain.AppName, domain.ConfigFileName), nil
}

// DefaultStateDir returns $XDG_STATE_HOME/nvshader/prewarm, falling back to
// ~/.local/state when XDG_STATE_HOME is unset.
func (l *Loader) DefaultStateDir() (string, error) {
	base, err := l.xdg("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(base, domain.AppName, domain.StateDirName), nil
}

func (l *Loader) xdg(key, fallback string) (string, error) {
	if v := l.getenv(key); filepath.IsAbs(v) {
		return v, nil
	}
	home, err := l.homeDir()
	if err != nil || home == "" {
		return "", zerr.Wrap(domain.ErrHomeNotFound, "failed to resolve config location")
	}
	return filepath.Join(home, fallback), nil
}

// envKey maps NVSHADER_SCAN__UNIT_TIMEOUT to scan.unit_timeout. Extra roots
// take a path list.
func envKey(key, value string) (string, any) {
	k := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	k = strings.ReplaceAll(k, "__", ".")
	if strings.HasPrefix(k, "scan.extra_roots.") {
		return k, filepath.SplitList(value)
	}
	return k, value
}

// toMap turns a File into the nested map koanf merges defaults from.
func toMap(f File) (map[string]any, error) {
	data, err := yamlv3.Marshal(f)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yamlv3.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func withCause(err, cause error) error {
	return zerr.With(err, "cause", cause.Error())
}

func expandHome(p, home string) string {
	if home == "" || p == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return p
}
