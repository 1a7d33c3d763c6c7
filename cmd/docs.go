package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// formatDoc is the fixture format reference shown by `weft docs`.
//
//go:embed format.md
var formatDoc string

var docsWidth int

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the fixture format reference",
	Long:  `Render the correspondence fixture format reference in the terminal.`,
	RunE:  runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().IntVar(&docsWidth, "width", 80, "word wrap width")
}

func runDocs(cmd *cobra.Command, _ []string) error {
	out, err := renderDocs(docsWidth)
	if err != nil {
		return err
	}
	cmd.Print(out)
	return nil
}

// renderDocs renders the embedded reference with glamour. The style is
// pinned rather than auto-detected: detection queries the terminal, which
// misbehaves when output is piped.
func renderDocs(width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("building renderer: %w", err)
	}

	out, err := r.Render(formatDoc)
	if err != nil {
		return "", fmt.Errorf("rendering docs: %w", err)
	}
	return out, nil
}
