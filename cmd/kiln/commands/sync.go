package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Aliases: []string{"install"},
		Short:   "Materialize and verify every dependency the lockfile pins",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Sync(cmd.Context(), ".", runOptions(cmd))
		},
	}
}
