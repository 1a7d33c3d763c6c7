package weave

import "fmt"

// Enclose finds the smallest matched open/close pair that contains both
// anchor tokens. It first computes the shallowest nesting depth the anchor
// range touches, measured just before every position from left to right
// inclusive, then takes the rightmost open at or before the left anchor
// that opens to exactly that depth. The matching close is guaranteed to sit
// at or after the right anchor: any candidate open nearer the anchors
// would have to close before the range's shallowest point, and the depth
// table rules that out.
//
// Measuring the minimum over every position rather than only token
// positions matters when the anchors straddle sibling units: the low point
// then sits between a close and the next open, where no token lives.
//
// Anchors must be token positions in order; both come from Resolve via
// Map. Malformed input panics rather than returning a wrong pair.
func (s *Sequence) Enclose(left, right int) (openPos, closePos int) {
	s.assertQueryable()
	if left > right {
		panic(fmt.Sprintf("weave: Enclose anchors out of order: %d > %d", left, right))
	}
	if s.markers[left].Kind != TokenMarker || s.markers[right].Kind != TokenMarker {
		panic(fmt.Sprintf("weave: Enclose anchors must be tokens, got %s and %s", s.markers[left], s.markers[right]))
	}

	minDepth := s.depth[left]
	for i := left + 1; i <= right; i++ {
		if s.depth[i] < minDepth {
			minDepth = s.depth[i]
		}
	}

	for p := left - 1; p >= 0; p-- {
		if s.markers[p].Kind == OpenMarker && s.depth[p]+1 == minDepth {
			closePos = s.match[p]
			if closePos < right {
				panic(fmt.Sprintf("weave: enclosing unit (%d,%d) ends before the right anchor %d", p, closePos, right))
			}
			return p, closePos
		}
	}
	panic(fmt.Sprintf("weave: no unit encloses anchors (%d,%d)", left, right))
}
