package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/weft/internal/ui/styles"
	"github.com/zjrosen/weft/internal/weave"
)

// layer orders the highlight passes, lowest to highest. When spans overlap
// on a cell the highest layer wins.
type layer int

const (
	layerNone layer = iota
	layerStructure
	layerMapped
	layerSelection
	layerCursor
)

// span is a highlight over an inclusive range of cluster columns on one line.
type span struct {
	from, to int
	layer    layer
}

// regionLineSpan projects a region onto one line, clamped to the line's
// cell count. ok is false when the region does not touch the line.
func regionLineSpan(r weave.Region, line, cells int) (span, bool) {
	if line < r.Begin.Line || line > r.End.Line || cells < 1 {
		return span{}, false
	}

	from := 1
	if line == r.Begin.Line {
		from = max(r.Begin.Column, 1)
	}
	to := cells
	if line == r.End.Line {
		to = min(r.End.Column, cells)
	}

	if to < from {
		return span{}, false
	}
	return span{from: from, to: to}, true
}

func layerStyle(l layer) (lipgloss.Style, bool) {
	switch l {
	case layerStructure:
		return styles.StructureStyle, true
	case layerMapped:
		return styles.MappedStyle, true
	case layerSelection:
		return styles.SelectionStyle, true
	case layerCursor:
		return styles.CursorStyle, true
	default:
		return lipgloss.Style{}, false
	}
}

// renderLine paints spans over a line of clusters. Adjacent cells won by
// the same layer render as one styled segment.
func renderLine(clusters []string, spans []span) string {
	if len(clusters) == 0 {
		// Empty lines still show the cursor (or selection) as one cell.
		top := layerNone
		for _, s := range spans {
			if s.layer > top {
				top = s.layer
			}
		}
		if style, ok := layerStyle(top); ok {
			return style.Render(" ")
		}
		return ""
	}

	winners := make([]layer, len(clusters))
	for _, s := range spans {
		from := max(s.from, 1)
		to := min(s.to, len(clusters))
		for c := from; c <= to; c++ {
			if s.layer > winners[c-1] {
				winners[c-1] = s.layer
			}
		}
	}

	var out strings.Builder
	start := 0
	for start < len(clusters) {
		end := start
		for end+1 < len(clusters) && winners[end+1] == winners[start] {
			end++
		}
		segment := strings.Join(clusters[start:end+1], "")
		if style, ok := layerStyle(winners[start]); ok {
			segment = style.Render(segment)
		}
		out.WriteString(segment)
		start = end + 1
	}
	return out.String()
}
