package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LumpsRGood/tablet-use-app/pkg/runtime/terminal/commands"
	"github.com/LumpsRGood/tablet-use-app/pkg/runtime/terminal/export"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

// CLI represents the command-line interface
type CLI struct {
	settings     report.Settings
	mappingsPath string
	reporter     *export.Reporter
	rootCmd      *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Settings     report.Settings
	MappingsPath string
	Output       io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Settings.HighThreshold.IsZero() && opts.Settings.MidThreshold.IsZero() {
		opts.Settings = report.DefaultSettings()
	}

	cli := &CLI{
		settings:     opts.Settings,
		mappingsPath: opts.MappingsPath,
		reporter:     export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabletuse",
		Short: "Tablet use reporting tool",
	}

	cmd.AddCommand(commands.NewProcessCmd(cli.settings, cli.mappingsPath, cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.mappingsPath))

	return cmd
}
