// Package commands implements the CLI commands for the kiln package
// manager.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kiln-lang/kiln/internal/app"
	"github.com/kiln-lang/kiln/internal/build"
	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context, dir, name string) error
	Get(ctx context.Context, dir string, locator domain.Locator, opts app.RunOptions) error
	Sync(ctx context.Context, dir string, opts app.RunOptions) error
	Clean(ctx context.Context) error
}

// jsonToggler is the optional logger capability behind --log-json.
type jsonToggler interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "The package manager for the Kiln language",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("output-mode", "o", "",
		"Output mode: auto, tui, or linear (defaults to the configured mode)")
	rootCmd.PersistentFlags().Bool("ci", false,
		"Use linear output mode (shorthand for --output-mode=linear)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit log output as JSON")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonLogs, _ := cmd.Flags().GetBool("log-json"); jsonLogs {
			if toggler, ok := c.logger.(jsonToggler); ok {
				toggler.SetJSON(true)
			}
		}
	}

	rootCmd.AddCommand(c.newModCmd())
	rootCmd.AddCommand(c.newGetCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// runOptions reads the presentation flags shared by get and sync.
func runOptions(cmd *cobra.Command) app.RunOptions {
	outputMode, _ := cmd.Flags().GetString("output-mode")
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		outputMode = "linear"
	}
	return app.RunOptions{OutputMode: outputMode}
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
