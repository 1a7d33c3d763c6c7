package weave

import "fmt"

// Synthesize walks the markers strictly inside a matched pair and emits
// the ordered derived regions to highlight. With no gaps the result is the
// single region from the open's location to the close's. A gap whose depth
// reaches the walk's current relative depth splits the output: the region
// built so far ends at the most recent close, the excluded stretch up to
// the next open is dropped, and that open begins the next region. Gaps
// deeper than the current relative depth belong to nested sibling seams
// and pass through silently.
//
// The pair must come from Enclose (or otherwise be a matched pair); a gap
// with no close before it inside the pair means the sequence is malformed
// and panics.
func (s *Sequence) Synthesize(openPos, closePos int) []Region {
	s.assertQueryable()
	if s.markers[openPos].Kind != OpenMarker || s.match[openPos] != closePos {
		panic(fmt.Sprintf("weave: Synthesize needs a matched pair, got (%d,%d)", openPos, closePos))
	}

	var (
		regions      []Region
		runningDepth int
		currentBegin = s.markers[openPos].At
		lastClose    = -1
	)

	for i := openPos + 1; i < closePos; i++ {
		m := s.markers[i]
		switch m.Kind {
		case OpenMarker:
			runningDepth++
		case CloseMarker:
			runningDepth--
			lastClose = i
		case TokenMarker:
		case GapMarker:
			if m.Depth < runningDepth {
				continue
			}
			if lastClose < 0 {
				panic(fmt.Sprintf("weave: gap at %d with no close to split at", i))
			}
			regions = append(regions, Region{Begin: currentBegin, End: s.markers[lastClose].At})
			gapPos := i
			for i++; i < closePos && s.markers[i].Kind != OpenMarker; i++ {
				if s.markers[i].Kind == CloseMarker {
					runningDepth--
				}
			}
			if i == closePos {
				panic(fmt.Sprintf("weave: gap at %d has no following open inside the unit", gapPos))
			}
			runningDepth++
			currentBegin = s.markers[i].At
			lastClose = -1
		default:
			panic(unknownKind(m))
		}
	}

	return append(regions, Region{Begin: currentBegin, End: s.markers[closePos].At})
}
