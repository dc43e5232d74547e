// Package commands implements the CLI commands for nvshader.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/nvshader/internal/app"
	"go.trai.ch/nvshader/internal/build"
)

// CLI represents the command line interface for nvshader.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Scan(ctx context.Context, opts app.Options) error
	Stats(ctx context.Context, opts app.Options) error
	List(ctx context.Context, opts app.Options, list app.ListOptions) error
	Clean(ctx context.Context, opts app.Options, clean app.CleanOptions) error
	Shrink(ctx context.Context, opts app.Options, size string) error
	Validate(ctx context.Context, opts app.Options) error
	Prewarm(ctx context.Context, opts app.Options, pw app.PrewarmOptions) error
	Watch(ctx context.Context, opts app.Options, w app.WatchOptions) error
	Info(ctx context.Context, opts app.Options) error
	ConfigShow(opts app.Options) error
	ConfigInit(opts app.Options, force bool) error
	ConfigPath(opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "nvshader",
		Short:         "Inspect, trim and prewarm GPU shader caches",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// Persistent flags go first so -v stays with --verbose.
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the config file")
	flags.StringP("output", "o", "auto", "Output format: auto, pretty, plain or json")
	flags.Bool("json-logs", false, "Write logs as JSON")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(
		c.newScanCmd(),
		c.newStatsCmd(),
		c.newListCmd(),
		c.newCleanCmd(),
		c.newShrinkCmd(),
		c.newValidateCmd(),
		c.newPrewarmCmd(),
		c.newWatchCmd(),
		c.newInfoCmd(),
		c.newConfigCmd(),
		c.newVersionCmd(),
	)

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options collects the persistent flags.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	output, _ := flags.GetString("output")
	jsonLogs, _ := flags.GetBool("json-logs")
	verbose, _ := flags.GetBool("verbose")
	metricsFile, _ := flags.GetString("metrics-file")
	return app.Options{
		ConfigPath:  configPath,
		Output:      output,
		JSONLogs:    jsonLogs,
		Verbose:     verbose,
		MetricsFile: metricsFile,
	}
}
