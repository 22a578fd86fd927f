package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/scanboard"
	"github.com/jpalmerr/scanboard/urlstate"
)

// replayCmd applies a list of events to a store and prints the result.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Apply events to a state and print the URL value",
	Long: `Apply the events in a YAML file to a state store, in order, and print
the URL value the store leaves behind.

The store starts from --from when given, otherwise from the default state
with the configured parameters. Events the store ignores or rejects are
reported on stderr and do not stop the replay.

Example:
  scanboard replay -f events.yaml
  scanboard replay -c config.yaml -f events.yaml --from eyJ2IjoxLC...`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	addConfigFlag(replayCmd)
	replayCmd.Flags().StringP("file", "f", "", "path to a YAML events file (required)")
	replayCmd.Flags().String("from", "", "encoded state to start from")
	_ = replayCmd.MarkFlagRequired("file")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, logger, codec, err := setup(cmd)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	events, err := loadEvents(path)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	if from != "" {
		// A bad starting point is reported rather than silently replaced.
		if _, err := codec.Decode(from); err != nil {
			return err
		}
	}

	loc, err := urlstate.NewMemoryLocation(url.Values{cfg.URL.Param: {from}}.Encode())
	if err != nil {
		return err
	}

	policy, err := scanboard.ParseReentrancyPolicy(cfg.Reentrancy)
	if err != nil {
		return err
	}
	opts := []scanboard.Option{
		scanboard.WithLogger(logger),
		scanboard.WithReentrancy(policy),
	}
	if from == "" && len(cfg.Parameters) > 0 {
		opts = append(opts, scanboard.WithParameters(cfg.Parameters))
	}

	warnings := 0
	opts = append(opts, scanboard.WithWarningHandler(func(w scanboard.Warning) {
		warnings++
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Error())
	}))

	st, unbind, err := urlstate.Open(loc, cfg.URL.Param, codec, opts...)
	if err != nil {
		return err
	}
	defer unbind()

	for _, e := range events {
		if err := st.DispatchContext(cmd.Context(), e); err != nil {
			return fmt.Errorf("dispatch %s: %w", e.Kind(), err)
		}
	}

	final := st.Snapshot()
	logger.Debug("replay finished",
		"events", len(events),
		"warnings", warnings,
		"revision", final.Revision,
	)

	if err := printEncoded(cmd, cfg, loc.Get(cfg.URL.Param)); err != nil {
		return err
	}
	if focused, ok := final.FocusedScan(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "focused: %s\n", focused)
	}
	return nil
}
