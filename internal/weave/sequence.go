package weave

import (
	"fmt"
	"strings"
)

// Sequence is a validated correspondence sequence together with the lookup
// tables the query operations need. Build one with NewSequence; it is
// immutable afterwards and safe for concurrent queries.
type Sequence struct {
	markers []Marker
	depth   []int // nesting depth just before markers[i]
	match   []int // partner position for opens and closes, -1 otherwise
	tokens  []int // positions of token markers, in order
}

// Validate checks the well-formedness rules for a correspondence sequence:
// a single root unit spans the whole sequence, nesting is balanced and
// never negative, token regions are ordered and never overlap (touching
// allowed), every unit contains at least one token, every gap sits between
// a close and the next open at its own level, and derived boundary
// locations never move backwards. It returns nil for a valid sequence and
// an error naming the first violation otherwise.
func Validate(markers []Marker) error {
	if len(markers) == 0 {
		return fmt.Errorf("empty sequence")
	}
	if markers[0].Kind != OpenMarker {
		return fmt.Errorf("marker 0: sequence must start with an open, got %s", markers[0])
	}

	type frame struct {
		pos    int // position of the open
		tokens int // tokens seen when it was pushed
	}
	var (
		opens          []frame
		pendingGaps    []int
		tokenCount     int
		lastStructural MarkerKind
		prevTokenEnd   Location
		haveToken      bool
		prevAt         Location
		haveAt         bool
	)

	for i, m := range markers {
		if m.structural() {
			if m.At.Line < 0 || m.At.Column < 0 {
				return fmt.Errorf("marker %d: negative location %s", i, m.At)
			}
			if haveAt && !prevAt.LE(m.At) {
				return fmt.Errorf("marker %d: derived boundary %s behind the previous boundary %s", i, m.At, prevAt)
			}
			prevAt, haveAt = m.At, true
		}

		switch m.Kind {
		case OpenMarker:
			opens = append(opens, frame{pos: i, tokens: tokenCount})
			pendingGaps = nil
		case CloseMarker:
			if len(opens) == 0 {
				return fmt.Errorf("marker %d: close without a matching open", i)
			}
			if len(pendingGaps) > 0 {
				return fmt.Errorf("marker %d: gap not followed by an open at its level", pendingGaps[0])
			}
			top := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			if tokenCount == top.tokens {
				return fmt.Errorf("marker %d: unit opened at %d contains no token", i, top.pos)
			}
			if len(opens) == 0 && i != len(markers)-1 {
				return fmt.Errorf("marker %d: root unit closes before the end of the sequence", i)
			}
		case TokenMarker:
			r := m.Region
			if r.Begin.Line < 0 || r.Begin.Column < 0 || r.End.Line < 0 || r.End.Column < 0 {
				return fmt.Errorf("marker %d: negative location in token %s", i, r)
			}
			if !r.Begin.LE(r.End) {
				return fmt.Errorf("marker %d: token region %s ends before it begins", i, r)
			}
			if haveToken && !prevTokenEnd.LE(r.Begin) {
				return fmt.Errorf("marker %d: token %s starts before the previous token ends at %s", i, r, prevTokenEnd)
			}
			prevTokenEnd, haveToken = r.End, true
			tokenCount++
		case GapMarker:
			if m.Depth < 0 {
				return fmt.Errorf("marker %d: negative gap depth %d", i, m.Depth)
			}
			if lastStructural != CloseMarker {
				return fmt.Errorf("marker %d: gap must follow a close", i)
			}
			pendingGaps = append(pendingGaps, i)
		default:
			return fmt.Errorf("marker %d: %s", i, unknownKind(m))
		}

		if m.structural() {
			lastStructural = m.Kind
		}
	}

	if len(opens) > 0 {
		return fmt.Errorf("marker %d: open is never closed", opens[len(opens)-1].pos)
	}
	return nil
}

// NewSequence validates the markers and builds the sequence with its
// depth, matching and token tables precomputed. The markers are copied;
// the caller's slice stays independent.
func NewSequence(markers []Marker) (*Sequence, error) {
	if err := Validate(markers); err != nil {
		return nil, err
	}
	return newSequence(markers), nil
}

// newSequence builds the lookup tables without validating. Tests use it
// directly to drive the query operations into their malformed-input panics.
func newSequence(markers []Marker) *Sequence {
	s := &Sequence{
		markers: append([]Marker(nil), markers...),
		depth:   make([]int, len(markers)),
		match:   make([]int, len(markers)),
	}
	var opens []int
	d := 0
	for i, m := range s.markers {
		s.depth[i] = d
		s.match[i] = -1
		switch m.Kind {
		case OpenMarker:
			opens = append(opens, i)
			d++
		case CloseMarker:
			if len(opens) > 0 {
				p := opens[len(opens)-1]
				opens = opens[:len(opens)-1]
				s.match[p] = i
				s.match[i] = p
			}
			d--
		case TokenMarker:
			s.tokens = append(s.tokens, i)
		case GapMarker:
		default:
			panic(unknownKind(m))
		}
	}
	return s
}

// Len returns the number of markers in the sequence.
func (s *Sequence) Len() int {
	return len(s.markers)
}

// Marker returns the marker at position i.
func (s *Sequence) Marker(i int) Marker {
	return s.markers[i]
}

// Depth returns the nesting depth immediately before the marker at i.
func (s *Sequence) Depth(i int) int {
	return s.depth[i]
}

// MatchingClose returns the position of the close paired with the open at
// p. The pairing is total on validated sequences.
func (s *Sequence) MatchingClose(p int) int {
	if s.markers[p].Kind != OpenMarker {
		panic(fmt.Sprintf("weave: MatchingClose of %s at %d", s.markers[p], p))
	}
	return s.match[p]
}

// MatchingOpen returns the position of the open paired with the close at q.
func (s *Sequence) MatchingOpen(q int) int {
	if s.markers[q].Kind != CloseMarker {
		panic(fmt.Sprintf("weave: MatchingOpen of %s at %d", s.markers[q], q))
	}
	return s.match[q]
}

// Root returns the positions of the outermost open and close, which always
// span the whole sequence.
func (s *Sequence) Root() (openPos, closePos int) {
	s.assertQueryable()
	return 0, s.match[0]
}

// TokenPositions returns the positions of all token markers, in order.
func (s *Sequence) TokenPositions() []int {
	return append([]int(nil), s.tokens...)
}

// TokenRegions returns the source span of every token, in order.
func (s *Sequence) TokenRegions() []Region {
	regions := make([]Region, len(s.tokens))
	for i, p := range s.tokens {
		regions[i] = s.markers[p].Region
	}
	return regions
}

// Units returns the derived span of every matched pair, ordered by the
// position of the opens. The first entry is the root unit.
func (s *Sequence) Units() []Region {
	var units []Region
	for i, m := range s.markers {
		if m.Kind == OpenMarker {
			units = append(units, Region{Begin: m.At, End: s.markers[s.match[i]].At})
		}
	}
	return units
}

// String renders the whole sequence in compact fixture notation.
func (s *Sequence) String() string {
	parts := make([]string, len(s.markers))
	for i, m := range s.markers {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// assertQueryable panics unless the sequence carries at least one token.
// Sequences built by NewSequence always do; this catches zero values.
func (s *Sequence) assertQueryable() {
	if len(s.markers) == 0 || len(s.tokens) == 0 {
		panic("weave: query on an empty or tokenless sequence")
	}
}
