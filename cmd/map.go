package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weft/internal/engine"
	"github.com/zjrosen/weft/internal/fixture"
	"github.com/zjrosen/weft/internal/weave"
)

var (
	mapFixture string
	mapQuery   string
	mapBack    bool
	mapJSON    bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map a region through a fixture and print the correlated regions",
	Long: `Run a single mapping query against a fixture and print the result,
one region per line (or a JSON array with --json).

A forward query takes a source region and prints the derived regions it
correlates to. With --back the query is a derived region and the output
is the source regions behind it.

Examples:
  # Map a source region through the built-in demo
  weft map -q 1:8-1:14

  # Map through a fixture file
  weft map -f straddle.yaml -q 1:5-1:20

  # Map a derived region back to its source regions
  weft map -f straddle.yaml -q 1:2-1:8 --back

  # Machine-readable output
  weft map -f straddle.yaml -q 1:5-1:20 --json | jq '.[0]'`,
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)

	mapCmd.Flags().StringVarP(&mapFixture, "fixture", "f", "",
		"fixture file (default: built-in demo)")
	mapCmd.Flags().StringVarP(&mapQuery, "query", "q", "",
		"query region, L:C or L:C-L:C")
	mapCmd.Flags().BoolVar(&mapBack, "back", false,
		"treat the query as a derived region and map back to source")
	mapCmd.Flags().BoolVar(&mapJSON, "json", false,
		"print the result as a JSON array of region notations")
	_ = mapCmd.MarkFlagRequired("query")
}

func runMap(cmd *cobra.Command, _ []string) error {
	query, err := fixture.ParseRegion(mapQuery)
	if err != nil {
		return fmt.Errorf("parsing query: %w", err)
	}

	fix, err := loadFixture(mapFixture)
	if err != nil {
		return err
	}

	session := engine.NewSession(fix, mapFixture, oneShotConfig())
	defer session.Close()

	ctx := context.Background()
	var regions []weave.Region
	if mapBack {
		regions, err = session.MapBack(ctx, query)
	} else {
		regions, err = session.Map(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("mapping: %w", err)
	}

	out, err := formatRegions(regions, mapJSON)
	if err != nil {
		return err
	}
	cmd.Print(out)
	return nil
}

// oneShotConfig builds the session config for single-query commands, where
// memoization would never get a second chance to hit.
func oneShotConfig() engine.Config {
	return engine.Config{CacheEnabled: false}
}

// formatRegions renders the result regions as line-per-region text, or as
// an indented JSON array of notations.
func formatRegions(regions []weave.Region, asJSON bool) (string, error) {
	notations := make([]string, 0, len(regions))
	for _, r := range regions {
		notations = append(notations, r.String())
	}

	if asJSON {
		out, err := json.MarshalIndent(notations, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding result: %w", err)
		}
		return string(out) + "\n", nil
	}

	if len(notations) == 0 {
		return "", nil
	}
	return strings.Join(notations, "\n") + "\n", nil
}
