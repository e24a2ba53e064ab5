// Package commands implements CLI command handlers for lyagushka.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are shared by the root command and its subcommands.
type globalFlags struct {
	configPath string
	verbose    bool
	quiet      bool
}

// NewRootCommand creates the lyagushka command. Given positional arguments it
// runs the analysis; subcommands cover the MCP server, result validation and
// build information.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(os.Stdin, func() bool { return fileIsTerminal(os.Stdin) })
}

func newRootCommandWithDeps(stdin io.Reader, stdinIsTerminal func() bool) *cobra.Command {
	gf := &globalFlags{}
	ac := &AnalyzeCommand{global: gf, stdin: stdin, stdinIsTerminal: stdinIsTerminal}

	rootCmd := &cobra.Command{
		Use:   "lyagushka [file|-] <factor> <min_cluster_size>",
		Short: "Find dense clusters and sparse gaps in integer data",
		Long: `lyagushka segments a one-dimensional set of integers into clusters of
closely spaced observations and the gaps between them, and scores every
segment with a z-score.

Input is one integer per line, read from a file (plain or .lz4), or from stdin
when the file is "-" or omitted and stdin is not a terminal.

The cluster threshold is the mean distance between neighbors divided by
factor; the gap threshold is factor times the mean distance times the gap
scale. Clusters smaller than min_cluster_size are dropped.`,
		Example: `  lyagushka events.txt 1.5 3
  seq 1 100 | lyagushka 1 2 --format text
  lyagushka - 2 5 --strategy neighborhood --format plot -o report.html < events.txt`,
		Args:          cobra.RangeArgs(minPositionalArgs, maxPositionalArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          ac.run,
	}

	rootCmd.PersistentFlags().StringVar(&gf.configPath, "config", "", "config file (default: lyagushka.yaml in ., ./config or /etc/lyagushka)")
	rootCmd.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&gf.quiet, "quiet", "q", false, "suppress output")

	ac.registerFlags(rootCmd)

	rootCmd.AddCommand(NewMCPCommand(gf))
	rootCmd.AddCommand(NewValidateCommand(stdin))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
