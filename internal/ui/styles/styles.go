// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#BBBBBB"} // Status bar, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor     = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane border
	BorderHighlightColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Overlay borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Passing checks, watch OK
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Stale fixture, reload pending
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Failing checks, load errors

	// Text grid highlight colors. Layers stack in the panes: structure
	// markers sit under mapped spans, which sit under the live selection,
	// which sits under the cursor cell.
	StructureColor   = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // Token/unit marker positions
	MappedBgColor    = lipgloss.AdaptiveColor{Light: "#AED6F1", Dark: "#1A5276"} // Correlated regions in the far pane
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#ADD6FF", Dark: "#264F78"} // Active query span in the near pane
	GapColor         = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // Splice points between chunks

	// Grid layer styles
	StructureStyle = lipgloss.NewStyle().Foreground(StructureColor).Underline(true)
	MappedStyle    = lipgloss.NewStyle().Background(MappedBgColor)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)
	CursorStyle    = lipgloss.NewStyle().Reverse(true)
	GapStyle       = lipgloss.NewStyle().Foreground(GapColor).Bold(true)

	// Check result indicators
	CheckPassStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Bold(true)
	CheckFailStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Footer hints
	FooterStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Pane titles
	TitleColor        = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#C9C9C9"}
	TitleFocusedColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
)
