package commands

import (
	"github.com/spf13/cobra"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

func (c *CLI) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <locator>",
		Short: "Add a dependency and pin it at the tip of its history",
		Long: `Add a dependency to kiln.mod and pin it in kiln.lock.

The locator is a git repository reference such as github.com/org/repo,
or a local path carrying the file:// scheme. Re-getting a declared
dependency re-resolves it to the current tip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Get(cmd.Context(), ".", domain.Locator(args[0]), runOptions(cmd))
		},
	}
}
