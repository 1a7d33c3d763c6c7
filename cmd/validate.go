package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/zjrosen/weft/internal/fixture"
)

var validateFixture string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a fixture's marker sequence",
	Long: `Parse a fixture and validate its marker sequence: balanced nesting with
a single root, tokens in strict source order, at least one token inside
every open/close pair, and gaps only between a close and the next open
at the same level.

Prints a summary on success and the first violated rule otherwise, with
a non-zero exit code.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFixture, "fixture", "f", "",
		"fixture file to validate")
	_ = validateCmd.MarkFlagRequired("fixture")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	fix, err := fixture.Load(validateFixture)
	if err != nil {
		return fmt.Errorf("validating fixture: %w", err)
	}

	cmd.Println(validationSummary(fix))
	if desc := describeFixture(fix); desc != "" {
		cmd.Println(desc)
	}
	return nil
}

// validationSummary describes a fixture that passed validation.
func validationSummary(fix *fixture.Fixture) string {
	seq := fix.Sequence
	return fmt.Sprintf("OK: %s: %d markers, %d tokens, %d units, %d checks",
		fix.Name, seq.Len(), len(seq.TokenRegions()), len(seq.Units()), len(fix.Checks))
}

// describeFixture wraps the fixture's free-text description for terminal
// output, indented under the summary line. Empty when the fixture has none.
func describeFixture(fix *fixture.Fixture) string {
	desc := strings.TrimSpace(fix.Description)
	if desc == "" {
		return ""
	}

	lines := strings.Split(wordwrap.String(desc, 72), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
