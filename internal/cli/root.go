// Package cli wires the cobra command surface for reviewbot.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes. Findings means the run completed but error-severity findings
// exist; RuntimeError means an operational failure prevented completion.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 3
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "reviewbot",
	Short: "Automated pull request review agent",
	Long:  "Reviewbot analyzes source changes with heuristic checks and posts findings to pull requests, on demand or as a polling monitor.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagVerbose)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error.
		return ExitUsageError
	}

	return exitCode
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reviewbot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "reviewbot version %s\n", version)
	},
}
