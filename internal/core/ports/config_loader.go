package ports

import "go.trai.ch/nvshader/internal/core/domain"

// ConfigLoader defines the interface for loading and creating the config file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves settings from defaults, the file at path, and the environment.
	// An empty path selects the default config file location.
	Load(path string) (domain.Settings, error)
	// DefaultPath returns the config file location used when no path is given.
	DefaultPath() (string, error)
	// Init writes the default configuration to path and returns where it was
	// written. An existing file is only replaced when force is set.
	Init(path string, force bool) (string, error)
}
