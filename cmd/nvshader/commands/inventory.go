package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nvshader/internal/app"
)

func (c *CLI) newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Discover and measure every shader cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Scan(cmd.Context(), options(cmd))
		},
	}
}

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache totals per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Stats(cmd.Context(), options(cmd))
		},
	}
}

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cache units",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, _ := cmd.Flags().GetStringSlice("type")
			game, _ := cmd.Flags().GetString("game")
			return c.app.List(cmd.Context(), options(cmd), app.ListOptions{
				Types: types,
				Game:  game,
			})
		},
	}
	cmd.Flags().StringSliceP("type", "t", nil, "Only list these cache types (dxvk, vkd3d, nvidia, mesa, fossilize)")
	cmd.Flags().StringP("game", "g", "", "Only list units of this game id or name")
	return cmd
}
