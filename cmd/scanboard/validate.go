package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/scanboard/config"
)

// validateCmd validates a config file.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a scanboard configuration file.

This command parses the YAML, expands environment variables, validates all
fields, and compiles every query. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  scanboard validate -c config.yaml
  scanboard validate --config /etc/scanboard/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	features, err := config.BuildFeatureSet(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	capacity := len(cfg.Palette)
	if capacity == 0 {
		capacity = 2
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Capacity:   %d slots\n", capacity)
	fmt.Fprintf(out, "  Features:   %d (default %s)\n", features.Len(), features.Default())
	fmt.Fprintf(out, "  URL param:  %s\n", cfg.URL.Param)
	fmt.Fprintf(out, "  Reentrancy: %s\n", cfg.Reentrancy)
	fmt.Fprintf(out, "  Queries:    %d\n", len(cfg.Queries))

	return nil
}
