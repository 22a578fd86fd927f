package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/scanboard/urlstate"
)

// encodeCmd turns a YAML state document into a URL value.
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a YAML state document as a URL value",
	Long: `Encode a YAML state document as the value carried in the URL.

The document is validated against the configured palette and features
before it is encoded, so the printed value always decodes. Without -f the
default state is encoded.

Example:
  scanboard encode -f state.yaml
  scanboard encode -c config.yaml -f state.yaml`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	addConfigFlag(encodeCmd)
	encodeCmd.Flags().StringP("file", "f", "", "path to a YAML state document")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, _, codec, err := setup(cmd)
	if err != nil {
		return err
	}

	state := codec.Default()
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read state file: %w", err)
		}
		doc, err := urlstate.ParseYAMLDocument(data)
		if err != nil {
			return err
		}
		state, err = doc.State(codec.Palette(), codec.Features())
		if err != nil {
			return fmt.Errorf("invalid state document: %w", err)
		}
	}

	encoded, err := codec.Encode(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return printEncoded(cmd, cfg, encoded)
}
