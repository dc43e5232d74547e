package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nvshader/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete caches older than a number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			days, _ := cmd.Flags().GetInt("older-than")
			policy, _ := cmd.Flags().GetBool("policy")
			return c.app.Clean(cmd.Context(), options(cmd), app.CleanOptions{
				OlderThanDays: days,
				Policy:        policy,
			})
		},
	}
	cmd.Flags().IntP("older-than", "d", 0, "Remove units at least this many days old")
	cmd.Flags().BoolP("policy", "p", false, "Apply the configured retention policy")
	cmd.MarkFlagsOneRequired("older-than", "policy")
	cmd.MarkFlagsMutuallyExclusive("older-than", "policy")
	return cmd
}

func (c *CLI) newShrinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shrink <size>",
		Short: "Delete the oldest caches until the total fits in size",
		Example: `  nvshader shrink 10GiB
  nvshader shrink 500M`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Shrink(cmd.Context(), options(cmd), args[0])
		},
	}
}
