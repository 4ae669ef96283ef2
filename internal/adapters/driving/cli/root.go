// Package cli wires the serchad command-line entrypoint: a root command
// that defaults to serving, plus a version subcommand.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/serchad/internal/logger"
)

// version is overridden at build time via -ldflags "-X ... .version=...".
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "serchad",
	Short: "serchad is a retrieval-augmented chat service",
	Long: "serchad ingests documents, indexes them for hybrid retrieval, " +
		"and answers chat messages grounded in that corpus or, when no " +
		"corpus applies, as a general-purpose assistant.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
