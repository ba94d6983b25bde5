package commands

import (
	"github.com/conduit-lang/chartdata/internal/cli/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCacheCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.renderCache()
			if err != nil {
				return err
			}
			if err := c.Clear(cmd.Context()); err != nil {
				return err
			}

			a.logger.Info("cache cleared", zap.String("backend", a.cfg.Cache.Backend))
			ui.WriteSuccess(cmd.OutOrStdout(), "Cache cleared", a.noColor)
			return nil
		},
	})

	return cmd
}
