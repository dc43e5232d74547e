package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nvshader/internal/app"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check cache units for corruption without deleting anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Validate(cmd.Context(), options(cmd))
		},
	}
}

func (c *CLI) newPrewarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prewarm [game-id]",
		Short: "Replay Fossilize caches through fossilize-replay",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts app.PrewarmOptions
			if len(args) == 1 {
				opts.GameID = args[0]
			}
			return c.app.Prewarm(cmd.Context(), options(cmd), opts)
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rescan on change and enforce the retention policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, _ := cmd.Flags().GetDuration("debounce")
			return c.app.Watch(cmd.Context(), options(cmd), app.WatchOptions{Window: window})
		},
	}
	cmd.Flags().Duration("debounce", 0, "Quiet period before a rescan (default 2s)")
	return cmd
}
