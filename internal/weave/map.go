package weave

// Map answers the source-to-derived question: which derived regions should
// light up for this source query. It runs the three stages in order:
// Resolve picks the anchor tokens, Enclose finds the smallest unit around
// them, Synthesize walks that unit and splits at triggered gaps. Anchors
// arrive inverted only for a query degenerated to the point where two
// tokens touch; the pair is swapped so the enclosing unit covers both.
func (s *Sequence) Map(query Region) []Region {
	left, right := s.Resolve(query)
	if left > right {
		left, right = right, left
	}
	openPos, closePos := s.Enclose(left, right)
	return s.Synthesize(openPos, closePos)
}

// MapBack answers the derived-to-source question: which source regions
// produced this derived query. The innermost unit whose derived span
// covers the whole query wins (covering units nest, so it is unique; a
// query on the exact seam of two touching sibling units resolves to the
// earlier one). A query outside the root span clamps to the root. The
// result is the unit's token spans in order, with runs of exactly touching
// tokens coalesced; it is never empty, since every unit contains a token.
func (s *Sequence) MapBack(query Region) []Region {
	s.assertQueryable()

	openPos, closePos := s.Root()
	for i, m := range s.markers {
		if i == 0 || m.Kind != OpenMarker {
			continue
		}
		unit := Region{Begin: m.At, End: s.markers[s.match[i]].At}
		if unit.Covers(query) && s.depth[i] > s.depth[openPos] {
			openPos, closePos = i, s.match[i]
		}
	}

	var out []Region
	for i := openPos + 1; i < closePos; i++ {
		m := s.markers[i]
		if m.Kind != TokenMarker {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == m.Region.Begin {
			out[n-1].End = m.Region.End
			continue
		}
		out = append(out, m.Region)
	}
	return out
}
