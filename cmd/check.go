package cmd

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/weft/internal/engine"
	"github.com/zjrosen/weft/internal/ui/styles"
	"github.com/zjrosen/weft/internal/weave"
)

var checkFixture string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the expected-result checks embedded in a fixture",
	Long: `Run every check in the fixture's checks list against the engine and
report each as pass or fail. A failing check shows a word-level diff of
the wanted regions against the computed ones.

Exits non-zero when any check fails, so fixtures double as regression
tests in CI.`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFixture, "fixture", "f", "",
		"fixture file (default: built-in demo)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	fix, err := loadFixture(checkFixture)
	if err != nil {
		return err
	}
	if len(fix.Checks) == 0 {
		cmd.Printf("%s: no checks\n", fix.Name)
		return nil
	}

	session := engine.NewSession(fix, checkFixture, oneShotConfig())
	defer session.Close()

	results, err := session.RunChecks(context.Background())
	if err != nil {
		return fmt.Errorf("running checks: %w", err)
	}

	report, failed := formatCheckReport(fix.Name, results)
	cmd.Print(report)

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

// formatCheckReport renders one line per passing check and a diff block
// per failing one. Returns the report and the number of failures.
func formatCheckReport(name string, results []engine.CheckResult) (string, int) {
	var out strings.Builder
	failed := 0

	for _, r := range results {
		direction := "map"
		if r.Back {
			direction = "map --back"
		}
		header := fmt.Sprintf("check %d: %s %s", r.Index+1, direction, r.Query)

		if r.Pass() {
			fmt.Fprintf(&out, "%s %s\n", styles.CheckPassStyle.Render("✓"), header)
			continue
		}

		failed++
		diff := diffNotations(notationList(r.Want), notationList(r.Got))
		fmt.Fprintf(&out, "%s %s\n", styles.CheckFailStyle.Render("✗"), header)
		fmt.Fprintf(&out, "  want: %s\n", renderSegments(diff.Want))
		fmt.Fprintf(&out, "  got:  %s\n", renderSegments(diff.Got))
	}

	if failed == 0 {
		fmt.Fprintf(&out, "%s: %d/%d checks passed\n", name, len(results), len(results))
	}
	return out.String(), failed
}

// notationList joins regions the way they appear in a fixture's want list.
func notationList(regions []weave.Region) string {
	if len(regions) == 0 {
		return "(no regions)"
	}
	notations := make([]string, 0, len(regions))
	for _, r := range regions {
		notations = append(notations, r.String())
	}
	return strings.Join(notations, ", ")
}

// diffSegmentType indicates whether a segment is unchanged, added, or deleted.
type diffSegmentType int

const (
	segmentUnchanged diffSegmentType = iota
	segmentAdded
	segmentDeleted
)

// diffSegment is a run of text with its diff status.
type diffSegment struct {
	Type diffSegmentType
	Text string
}

// notationDiff holds word-level diff segments for a want/got line pair.
type notationDiff struct {
	Want []diffSegment
	Got  []diffSegment
}

// tokenizeNotation splits a notation list into tokens (numbers and
// punctuation). Example: "1:3-1:9, 2:1" → ["1", ":", "3", "-", ...].
func tokenizeNotation(line string) []string {
	if line == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// diffNotations computes a word-level diff between the wanted and computed
// notation lists. Tokens are joined with NUL so the diff runs at token
// granularity rather than per character.
func diffNotations(want, got string) notationDiff {
	if want == got {
		seg := []diffSegment{{Type: segmentUnchanged, Text: want}}
		return notationDiff{Want: seg, Got: seg}
	}

	wantText := strings.Join(tokenizeNotation(want), "\x00")
	gotText := strings.Join(tokenizeNotation(got), "\x00")

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(wantText, gotText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var result notationDiff
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			result.Want = append(result.Want, diffSegment{Type: segmentUnchanged, Text: text})
			result.Got = append(result.Got, diffSegment{Type: segmentUnchanged, Text: text})
		case diffmatchpatch.DiffDelete:
			result.Want = append(result.Want, diffSegment{Type: segmentDeleted, Text: text})
		case diffmatchpatch.DiffInsert:
			result.Got = append(result.Got, diffSegment{Type: segmentAdded, Text: text})
		}
	}
	return result
}

var (
	segmentAddedStyle   = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	segmentDeletedStyle = lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
)

// renderSegments paints diff segments: deletions red, additions green,
// unchanged text plain.
func renderSegments(segments []diffSegment) string {
	var out strings.Builder
	for _, seg := range segments {
		switch seg.Type {
		case segmentAdded:
			out.WriteString(segmentAddedStyle.Render(seg.Text))
		case segmentDeleted:
			out.WriteString(segmentDeletedStyle.Render(seg.Text))
		default:
			out.WriteString(seg.Text)
		}
	}
	return out.String()
}
