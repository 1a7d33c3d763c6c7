package viewer

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/weft/internal/weave"
)

// placeholderCell fills synthesized grids for fixtures that carry markers
// but no text.
const placeholderCell = "·"

// textGrid holds one pane's text as addressable lines of grapheme
// clusters. Locations index into it 1-based, the way fixtures count.
type textGrid struct {
	raw   []string   // original lines
	cells [][]string // grapheme clusters per line
}

// newTextGrid builds a grid from pane text. Empty text synthesizes a
// placeholder grid sized to the given extent so the cursor still has
// cells to land on.
func newTextGrid(text string, extent weave.Location) textGrid {
	if strings.TrimSpace(text) == "" {
		return placeholderGrid(extent)
	}

	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	cells := make([][]string, len(raw))
	for i, line := range raw {
		cells[i] = splitClusters(line)
	}
	return textGrid{raw: raw, cells: cells}
}

func placeholderGrid(extent weave.Location) textGrid {
	lines := max(extent.Line, 1)
	cols := max(extent.Column, 1)

	raw := make([]string, lines)
	cells := make([][]string, lines)
	for i := range raw {
		raw[i] = strings.Repeat(placeholderCell, cols)
		line := make([]string, cols)
		for c := range line {
			line[c] = placeholderCell
		}
		cells[i] = line
	}
	return textGrid{raw: raw, cells: cells}
}

// splitClusters breaks a line into grapheme clusters so wide characters
// occupy one logical column each.
func splitClusters(s string) []string {
	var clusters []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// lineCount returns the number of lines in the grid.
func (g textGrid) lineCount() int {
	return len(g.cells)
}

// clusters returns the cells of a 1-based line, nil when out of range.
func (g textGrid) clusters(line int) []string {
	if line < 1 || line > len(g.cells) {
		return nil
	}
	return g.cells[line-1]
}

// clusterColumnAt maps a 0-based screen cell offset to the 1-based cluster
// column rendered there. Wide clusters cover several cells; offsets past
// the line's end land on the last cluster.
func clusterColumnAt(clusters []string, x int) int {
	if len(clusters) == 0 {
		return 1
	}

	width := 0
	for i, cluster := range clusters {
		width += runewidth.StringWidth(cluster)
		if x < width {
			return i + 1
		}
	}
	return len(clusters)
}

// clamp pins a location inside the grid. Columns clamp to the line's
// cluster count; empty lines keep a single virtual cell at column 1.
func (g textGrid) clamp(loc weave.Location) weave.Location {
	if len(g.cells) == 0 {
		return weave.Location{Line: 1, Column: 1}
	}

	loc.Line = min(max(loc.Line, 1), len(g.cells))
	cols := max(len(g.cells[loc.Line-1]), 1)
	loc.Column = min(max(loc.Column, 1), cols)
	return loc
}

// sourceExtent is the furthest source location any token reaches.
func sourceExtent(seq *weave.Sequence) weave.Location {
	extent := weave.Location{Line: 1, Column: 1}
	for _, r := range seq.TokenRegions() {
		extent = laterOf(extent, r.End)
	}
	return extent
}

// derivedExtent is the furthest derived location any unit boundary reaches.
func derivedExtent(seq *weave.Sequence) weave.Location {
	extent := weave.Location{Line: 1, Column: 1}
	for _, u := range seq.Units() {
		extent = laterOf(extent, u.End)
	}
	return extent
}

func laterOf(a, b weave.Location) weave.Location {
	if a.Before(b) {
		return b
	}
	return a
}
