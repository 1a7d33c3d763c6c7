package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/weft/internal/ui/panes"
	"github.com/zjrosen/weft/internal/ui/styles"
	"github.com/zjrosen/weft/internal/weave"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	paneW, paneH := m.layout()

	source := zone.Mark(sourceZoneID, m.renderPane(SourcePane, paneW, paneH))
	derived := zone.Mark(derivedZoneID, m.renderPane(DerivedPane, paneW, paneH))

	view := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, source, derived),
		m.renderStatusBar(),
		m.help.View(m.keys),
	)

	view = m.logs.Overlay(view)
	return zone.Scan(view)
}

// renderPane draws one text pane with its highlight layers and titled
// border.
func (m Model) renderPane(p FocusPane, width, height int) string {
	pane := m.paneFor(p)
	focused := m.focus == p

	contentW := max(width-2, 1)
	contentH := max(height-2, 1)
	total := pane.grid.lineCount()

	lines := make([]string, 0, contentH)
	for row := range contentH {
		ln := pane.offset + row + 1
		if ln > total {
			lines = append(lines, "")
			continue
		}
		rendered := renderLine(pane.grid.clusters(ln), m.lineSpans(p, pane, ln))
		lines = append(lines, ansi.Truncate(rendered, contentW, ""))
	}

	titleColor := styles.TitleColor
	if focused {
		titleColor = styles.TitleFocusedColor
	}

	var bottomLeft string
	if focused {
		bottomLeft = pane.selectionNotation()
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:            strings.Join(lines, "\n"),
		Width:              width,
		Height:             height,
		TopLeft:            p.String(),
		TopRight:           m.paneCounts(p),
		BottomLeft:         bottomLeft,
		BottomRight:        panes.ScrollIndicator(pane.offset, contentH, total),
		Focused:            focused,
		TitleColor:         titleColor,
		BorderColor:        styles.BorderDefaultColor,
		FocusedBorderColor: styles.BorderFocusColor,
	})
}

// lineSpans collects the highlight spans for one line of a pane, lowest
// layer first. Structure marks always show; mapped results go to the
// unfocused pane; selection and cursor to the focused one.
func (m Model) lineSpans(p FocusPane, pane *paneState, ln int) []span {
	cells := len(pane.grid.clusters(ln))
	var spans []span

	add := func(r weave.Region, l layer) {
		if s, ok := regionLineSpan(r, ln, cells); ok {
			s.layer = l
			spans = append(spans, s)
		}
	}

	seq := m.session.Sequence()
	if p == SourcePane {
		for _, r := range seq.TokenRegions() {
			add(r, layerStructure)
		}
	} else {
		for _, u := range seq.Units() {
			add(weave.Region{Begin: u.Begin, End: u.Begin}, layerStructure)
			add(weave.Region{Begin: u.End, End: u.End}, layerStructure)
		}
	}

	if p != m.focus {
		for _, r := range m.mapped {
			add(r, layerMapped)
		}
	}

	if p == m.focus {
		if pane.anchor != nil {
			add(pane.selection(), layerSelection)
		}
		if pane.cursor.Line == ln {
			spans = append(spans, span{from: pane.cursor.Column, to: pane.cursor.Column, layer: layerCursor})
		}
	}

	return spans
}

// paneCounts renders the top-right structure summary for a pane.
func (m Model) paneCounts(p FocusPane) string {
	seq := m.session.Sequence()
	if p == SourcePane {
		return fmt.Sprintf("%d tokens", len(seq.TokenRegions()))
	}
	return fmt.Sprintf("%d units", len(seq.Units()))
}

// renderStatusBar draws the single status line under the panes.
func (m Model) renderStatusBar() string {
	pane := m.paneFor(m.focus)

	segs := []string{
		m.session.Fixture().Name,
		m.focus.String() + " " + pane.selectionNotation(),
	}

	if m.mapErr != nil {
		segs = append(segs, styles.CheckFailStyle.Render("map error: "+m.mapErr.Error()))
	} else {
		arrow := "→"
		if m.focus == DerivedPane {
			arrow = "←"
		}
		segs = append(segs, arrow+" "+styles.FormatRegionList(regionNotations(m.mapped)))
		if m.lastCached {
			segs = append(segs, "cached")
		}
	}

	if m.gapCount > 0 {
		segs = append(segs, styles.GapStyle.Render(fmt.Sprintf("%d splice(s)", m.gapCount)))
	}
	if m.checksRun {
		segs = append(segs, styles.FormatCheckSummary(m.checksPassed, m.checksTotal))
	}
	if m.watcher != nil {
		segs = append(segs, "watching")
	}
	if m.status != "" {
		segs = append(segs, m.status)
	}

	bar := strings.Join(segs, " │ ")
	return styles.StatusBarStyle.Render(ansi.Truncate(bar, max(m.width-2, 0), "…"))
}
