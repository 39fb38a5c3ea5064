package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	colorMode  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "snip",
	Short: "snip - select fields, bytes, or characters from each line",
	Long: `snip prints selected parts of lines from each input, like cut(1).

A selection list is a comma-separated list of 1-based positions and
inclusive ranges, such as "1,3-5". Positions are applied in the order
given and may repeat, so "2,1,1" prints the second field followed by
the first field twice.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .snip.yaml or .snip.toml profile file")

	// Add subcommands
	rootCmd.AddCommand(cutCmd)
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
