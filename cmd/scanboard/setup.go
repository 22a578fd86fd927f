package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/scanboard/config"
	"github.com/jpalmerr/scanboard/urlstate"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// addConfigFlag registers the optional -c flag.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file (defaults are used when omitted)")
}

// loadConfig loads the file named by -c, or the default configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return config.Parse(nil)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and codec shared by
// the state commands.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *urlstate.Codec, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg.Level())
	codec, err := config.BuildCodec(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build codec: %w", err)
	}
	return cfg, logger, codec, nil
}

// printEncoded writes the encoded value and, when a base URL is configured,
// the share link.
func printEncoded(cmd *cobra.Command, cfg *config.Config, encoded string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, encoded)

	link, err := config.ShareURL(cfg, encoded)
	if err != nil {
		return fmt.Errorf("failed to build share URL: %w", err)
	}
	if link != "" {
		fmt.Fprintf(out, "link: %s\n", link)
	}
	return nil
}
