// Package main is the entry point for the scanboard CLI.
//
// The CLI works on the same state, codec and configuration as the SDK. It is
// meant for inspecting shared links, preparing fixtures and checking
// configuration in CI.
//
// Usage:
//
//	scanboard validate -c config.yaml            # Validate configuration
//	scanboard encode -f state.yaml               # YAML state -> URL value
//	scanboard decode <value>                     # URL value -> YAML state
//	scanboard replay -f events.yaml              # Apply events, print the URL value
//	scanboard query -e 'len(selected)' <value>   # Evaluate an expression
//	scanboard version                            # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "scanboard",
	Short: "Inspect and build shareable scan analysis state",
	Long: `scanboard works with the shared state of the scan analysis tool: the
selected scans and their colours, the feature views, and the plot
parameters. The state travels between users as a single URL query value.

Quick start:
  1. Describe events in a file (events.yaml)
  2. Run: scanboard replay -f events.yaml
  3. Paste the printed value into a link, or inspect it with scanboard decode

Example events:
  - kind: SCAN_TOGGLED
    id: scan-17
  - kind: FEATURE_SELECTED
    view: "1"
    feature: shape`,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this scanboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "scanboard %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
