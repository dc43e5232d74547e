package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
	yamlv3 "gopkg.in/yaml.v3"
)

const header = "# nvshader configuration. Environment variables prefixed with " + EnvPrefix + " override these values.\n"

// Render marshals settings into config.yaml form.
func Render(s domain.Settings) ([]byte, error) {
	return marshal(FromSettings(s))
}

func marshal(f File) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, zerr.Wrap(err, "failed to render config")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to render config")
	}
	return buf.Bytes(), nil
}

// Init writes the default configuration to path, or to the default location
// when path is empty, and returns the path written. An existing file is kept
// unless force is set.
func (l *Loader) Init(path string, force bool) (string, error) {
	if path == "" {
		var err error
		if path, err = l.DefaultPath(); err != nil {
			return "", err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigWriteFailed, "config file already exists"), "path", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", withCause(zerr.With(zerr.Wrap(domain.ErrConfigWriteFailed, "config file is not accessible"), "path", path), err)
	}

	stateDir, err := l.DefaultStateDir()
	if err != nil {
		return "", err
	}
	data, err := marshal(DefaultFile(stateDir))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return "", withCause(zerr.With(zerr.Wrap(domain.ErrConfigWriteFailed, "failed to create config directory"), "path", path), err)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return "", withCause(zerr.With(zerr.Wrap(domain.ErrConfigWriteFailed, "failed to write config file"), "path", path), err)
	}
	return path, nil
}
