package app

import (
	"context"
	"fmt"

	"go.trai.ch/nvshader/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/core/domain"
)

// Info prints the detected GPU, the replay tool status, the resolved roots
// and the persisted prewarm history. It does not scan.
func (a *App) Info(ctx context.Context, opts Options) error {
	rt, err := a.open(opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	roots, err := rt.session.Roots(ctx)
	if err != nil {
		return err
	}
	history, err := rt.session.History()
	if err != nil {
		return err
	}

	info := Info{
		Version:   domain.VersionString(),
		NVIDIAGPU: rt.session.IsNVIDIAGPU(),
		Prewarm:   rt.session.PrewarmAvailable(),
		StateDir:  rt.settings.StateDir,
		Roots:     make(map[string][]string, len(roots)),
		History:   history,
	}
	if info.ConfigPath, err = a.configPath(opts); err != nil {
		return err
	}
	for t, dirs := range roots {
		info.Roots[t.String()] = dirs
	}
	return rt.render.Info(info)
}

// ConfigShow prints the effective configuration as YAML.
func (a *App) ConfigShow(opts Options) error {
	settings, err := a.Loader.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	data, err := config.Render(settings)
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

// ConfigInit writes the default configuration. An existing file is only
// replaced when force is set.
func (a *App) ConfigInit(opts Options, force bool) error {
	path, err := a.Loader.Init(opts.ConfigPath, force)
	if err != nil {
		return err
	}
	a.Logger.Info("wrote " + path)
	return nil
}

// ConfigPath prints the config file location.
func (a *App) ConfigPath(opts Options) error {
	path, err := a.configPath(opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, path)
	return err
}

func (a *App) configPath(opts Options) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	return a.Loader.DefaultPath()
}
