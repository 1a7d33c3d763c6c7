package panes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/weft/internal/ui/styles"
)

// ScrollIndicatorStyle is the style for scroll position indicators (e.g., "↑50%").
// Uses muted text color for subtlety.
var ScrollIndicatorStyle = lipgloss.NewStyle().
	Foreground(styles.TextMutedColor)

// ScrollIndicator renders a scroll position hint like "↑50%" for content that
// extends beyond the visible window. Returns empty string when everything fits
// or the window sits at the very top.
func ScrollIndicator(offset, visible, total int) string {
	if total <= visible || offset <= 0 {
		return ""
	}

	scrollable := total - visible
	if offset > scrollable {
		offset = scrollable
	}
	percent := offset * 100 / scrollable

	return ScrollIndicatorStyle.Render(fmt.Sprintf("↑%d%%", percent))
}
