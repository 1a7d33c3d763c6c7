// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TruncateString truncates a string to fit within maxWidth display cells,
// adding an ellipsis when it had to cut. Truncation runs per grapheme
// cluster so wide characters and combining marks never get split.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	// Leave room for the ellipsis
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var out strings.Builder
	width := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if width+w > maxWidth-3 {
			break
		}
		out.WriteString(cluster)
		width += w
	}

	return out.String() + "..."
}

// FormatCheckSummary renders a pass/fail tally like "3/4 checks passed",
// colored green when everything passed and red otherwise.
// Returns empty string when total is 0.
func FormatCheckSummary(passed, total int) string {
	if total <= 0 {
		return ""
	}
	text := fmt.Sprintf("%d/%d checks passed", passed, total)
	if passed == total {
		return CheckPassStyle.Render(text)
	}
	return CheckFailStyle.Render(text)
}

// FormatRegionList joins region notations for status display, e.g.
// "1:1-1:15, 3:4-3:9". Returns "none" for an empty list.
func FormatRegionList(notations []string) string {
	if len(notations) == 0 {
		return "none"
	}
	return strings.Join(notations, ", ")
}
