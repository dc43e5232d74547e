// Package app implements the use cases behind the nvshader commands.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmgilman/go/exec"
	"go.trai.ch/nvshader/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/paths"     //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
	"go.trai.ch/nvshader/internal/engine/session"
	"go.trai.ch/zerr"
)

// Options are the flags shared by every command.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string
	// Output is auto, pretty, plain or json.
	Output string
	// JSONLogs switches the log output to JSON.
	JSONLogs bool
	// Verbose enables debug logging.
	Verbose bool
	// MetricsFile overrides the configured Prometheus textfile path.
	MetricsFile string
}

// Adapters are the settings-independent collaborators resolved at startup.
type Adapters struct {
	Loader   ports.ConfigLoader
	Logger   ports.Logger
	Tracer   ports.Tracer
	Resolver *paths.Resolver
	Games    ports.GameNameLookup
	GPU      ports.GPUProbe
	Remover  ports.Remover
	Executor exec.Executor
	Watcher  ports.Watcher
}

// App represents the main application logic.
type App struct {
	Adapters

	out        io.Writer
	now        func() time.Time
	newInvoker func(domain.PrewarmSettings) ports.ReplayInvoker
	detect     func() detector.OutputMode
}

// New creates a new App instance.
func New(adapters Adapters) *App {
	a := &App{
		Adapters: adapters,
		out:      os.Stdout,
		now:      time.Now,
		detect:   detector.DetectEnvironment,
	}
	a.newInvoker = func(s domain.PrewarmSettings) ports.ReplayInvoker {
		return shell.NewInvoker(a.Executor, s, a.Logger)
	}
	return a
}

// WithOutput redirects command output.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithClock overrides the time source used for ages and history.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithInvoker replaces the replay invoker factory.
func (a *App) WithInvoker(fn func(domain.PrewarmSettings) ports.ReplayInvoker) *App {
	a.newInvoker = fn
	return a
}

// Shutdown flushes the tracer, if it supports flushing.
func (a *App) Shutdown(ctx context.Context) error {
	if s, ok := a.Tracer.(interface{ Shutdown(context.Context) error }); ok {
		return s.Shutdown(ctx)
	}
	return nil
}

// configurable is implemented by loggers whose format and level can change
// after construction.
type configurable interface {
	SetJSON(enable bool)
	SetLevel(name string) error
}

// runtime is the per-command state built from the loaded settings.
type runtime struct {
	settings domain.Settings
	session  *session.Session
	metrics  *metrics.Recorder
	render   *renderer
}

// open loads the settings, configures logging and output, and creates a
// session. The caller must call close.
func (a *App) open(opts Options) (*runtime, error) {
	mode, err := detector.ParseMode(opts.Output)
	if err != nil {
		return nil, err
	}

	settings, err := a.Loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.MetricsFile != "" {
		settings.MetricsFile = opts.MetricsFile
	}
	if err := a.configureLogger(settings.Logging, opts); err != nil {
		return nil, err
	}

	rec := metrics.New(settings.MetricsFile)
	sessOpts := []session.Option{
		session.WithMetrics(rec),
		session.WithLogger(a.Logger),
		session.WithClock(a.now),
	}
	if a.Tracer != nil {
		sessOpts = append(sessOpts, session.WithTracer(a.Tracer))
	}
	if settings.StateDir != "" {
		sessOpts = append(sessOpts, session.WithStore(cas.NewStore(settings.StateDir)))
	}

	sess, err := session.New(settings, session.Deps{
		Resolver: a.Resolver.Extend(settings.Scan.ExtraRoots),
		Games:    a.Games,
		Invoker:  a.newInvoker(settings.Prewarm),
		GPU:      a.GPU,
		Remover:  a.Remover,
	}, sessOpts...)
	if err != nil {
		return nil, err
	}

	return &runtime{
		settings: settings,
		session:  sess,
		metrics:  rec,
		render:   newRenderer(a.out, detector.ResolveMode(a.detect(), mode), a.now),
	}, nil
}

func (a *App) configureLogger(s domain.LoggingSettings, opts Options) error {
	l, ok := a.Logger.(configurable)
	if !ok {
		return nil
	}
	level := s.Level
	if opts.Verbose {
		level = "debug"
	}
	if err := l.SetLevel(level); err != nil {
		return err
	}
	l.SetJSON(opts.JSONLogs || s.Format == "json")
	return nil
}

// close destroys the session and writes the metrics textfile.
func (a *App) close(rt *runtime) {
	rt.session.Destroy()
	if err := rt.metrics.Flush(); err != nil {
		a.Logger.Warn(err.Error())
	}
}

// scan rebuilds the inventory and logs the non-fatal per-unit errors.
func (a *App) scan(ctx context.Context, rt *runtime) error {
	if err := rt.session.Scan(ctx); err != nil {
		return err
	}
	errs, err := rt.session.ScanErrors()
	if err != nil {
		return err
	}
	for _, e := range errs {
		a.Logger.Debug(e.Error())
	}
	if len(errs) > 0 {
		a.Logger.Warn(fmt.Sprintf("%d cache units could not be measured", len(errs)))
	}
	return nil
}

// scanned opens a runtime and scans it.
func (a *App) scanned(ctx context.Context, opts Options) (*runtime, error) {
	rt, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	if err := a.scan(ctx, rt); err != nil {
		a.close(rt)
		return nil, err
	}
	return rt, nil
}
