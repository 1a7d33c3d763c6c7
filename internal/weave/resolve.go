package weave

// Resolve maps a source query region to its two anchor token positions.
// The left anchor comes from the query's begin: the rightmost token whose
// span contains it, else the nearest token to its right. The right anchor
// mirrors that from the query's end: the leftmost token containing it, else
// the nearest token to its left. A query entirely outside all tokens
// collapses both anchors to the first or last token, and a query strictly
// inside the whitespace between two non-adjacent tokens collapses both to
// whichever of the two is closer, preferring the following token on a tie.
//
// One boundary keeps its historical quirk: a query that degenerates to the
// exact point where two tokens touch anchors left on the following token
// and right on the preceding one, so the returned pair is inverted. Map
// swaps inverted anchors before enclosing.
func (s *Sequence) Resolve(query Region) (left, right int) {
	s.assertQueryable()

	left = s.anchorForBegin(query.Begin)
	right = s.anchorForEnd(query.End)
	if left <= right {
		return left, right
	}

	if s.overlapsToken(query.Begin) || s.overlapsToken(query.End) {
		// Degenerate query on a touching boundary. Keep the inverted
		// pair; both tokens own the point.
		return left, right
	}

	// Strictly inside whitespace: right now holds the token before the
	// gap and left the token after it. Collapse to the closer one.
	before := s.markers[right].Region.End
	after := s.markers[left].Region.Begin
	if Distance(before, query.Begin) < Distance(query.End, after) {
		return right, right
	}
	return left, left
}

// anchorForBegin picks the anchor for a query start: the rightmost token
// containing it, else the leftmost token ending at or after it, else the
// last token. Linear scans; tokens are few and strictly ordered, so the
// first hit in scan direction is the unique answer.
func (s *Sequence) anchorForBegin(p Location) int {
	for i := len(s.tokens) - 1; i >= 0; i-- {
		if s.markers[s.tokens[i]].Region.Contains(p) {
			return s.tokens[i]
		}
	}
	for _, pos := range s.tokens {
		if p.LE(s.markers[pos].Region.End) {
			return pos
		}
	}
	return s.tokens[len(s.tokens)-1]
}

// anchorForEnd picks the anchor for a query end: the leftmost token
// containing it, else the rightmost token beginning at or before it, else
// the first token.
func (s *Sequence) anchorForEnd(p Location) int {
	for _, pos := range s.tokens {
		if s.markers[pos].Region.Contains(p) {
			return pos
		}
	}
	for i := len(s.tokens) - 1; i >= 0; i-- {
		if s.markers[s.tokens[i]].Region.Begin.LE(p) {
			return s.tokens[i]
		}
	}
	return s.tokens[0]
}

// overlapsToken reports whether any token's span contains the location.
func (s *Sequence) overlapsToken(p Location) bool {
	for _, pos := range s.tokens {
		if s.markers[pos].Region.Contains(p) {
			return true
		}
	}
	return false
}
