package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/scanboard/urlstate"
)

// decodeCmd turns a URL value into a YAML state document.
var decodeCmd = &cobra.Command{
	Use:   "decode <value>",
	Short: "Decode a URL value into a YAML state document",
	Long: `Decode the state value taken from a shared link and print it as YAML.

The value is checked against the configured palette and features. A value
that does not decode is an error here; the SDK falls back to the default
state instead.

Example:
  scanboard decode eyJ2IjoxLC...
  scanboard decode -c config.yaml eyJ2IjoxLC...`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	addConfigFlag(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	_, _, codec, err := setup(cmd)
	if err != nil {
		return err
	}

	state, err := codec.Decode(args[0])
	if err != nil {
		return err
	}

	out, err := urlstate.MarshalYAMLDocument(urlstate.NewDocument(state))
	if err != nil {
		return fmt.Errorf("failed to render state: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
