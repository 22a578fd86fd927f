package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/scanboard/config"
	"github.com/jpalmerr/scanboard/query"
)

// queryCmd evaluates an expression against a state.
var queryCmd = &cobra.Command{
	Use:   "query [value]",
	Short: "Evaluate a query expression against a state",
	Long: `Evaluate an expression against the state carried by a URL value, or
against the default state when no value is given.

The expression is given with -e or picked by name from the queries in the
config file with -n. Available variables:
  selected, slots, free, capacity, views, viewIds, nextView,
  params, focused, revision

Example:
  scanboard query -e 'len(selected) == capacity' eyJ2IjoxLC...
  scanboard query -c config.yaml -n full eyJ2IjoxLC...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	addConfigFlag(queryCmd)
	queryCmd.Flags().StringP("expr", "e", "", "expression to evaluate")
	queryCmd.Flags().StringP("name", "n", "", "name of a query from the config file")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, _, codec, err := setup(cmd)
	if err != nil {
		return err
	}

	q, err := resolveQuery(cmd, cfg)
	if err != nil {
		return err
	}

	state := codec.Default()
	if len(args) == 1 {
		state, err = codec.Decode(args[0])
		if err != nil {
			return err
		}
	}

	result, err := q.Eval(state)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result)
	return nil
}

// resolveQuery picks the query named by -n or compiles the one given by -e.
func resolveQuery(cmd *cobra.Command, cfg *config.Config) (*query.Query, error) {
	expr, _ := cmd.Flags().GetString("expr")
	name, _ := cmd.Flags().GetString("name")

	switch {
	case expr != "" && name != "":
		return nil, errors.New("--expr and --name are mutually exclusive")
	case expr != "":
		return query.Compile(expr)
	case name != "":
		queries, err := config.BuildQueries(cfg)
		if err != nil {
			return nil, err
		}
		q, ok := queries[name]
		if !ok {
			return nil, fmt.Errorf("no query named %q in config", name)
		}
		return q, nil
	default:
		return nil, errors.New("one of --expr or --name is required")
	}
}
