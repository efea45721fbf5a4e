package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

func (c *CLI) newModCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mod",
		Short: "Manage the kiln.mod manifest",
	}
	cmd.AddCommand(c.newModInitCmd())
	return cmd
}

func (c *CLI) newModInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [name]",
		Short: "Create kiln.mod, kiln.lock, and a src/main.kiln scaffold",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return zerr.Wrap(domain.ErrIO, err.Error())
				}
				name = filepath.Base(wd)
			}
			return c.app.Init(cmd.Context(), ".", name)
		},
	}
}
