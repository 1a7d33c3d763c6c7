package weave

import "fmt"

// Location is a position in a text. Lines and columns are plain
// non-negative integers; the algorithm only ever compares them, so the
// caller's numbering convention (0- or 1-based) passes through untouched.
type Location struct {
	Line   int
	Column int
}

// LE reports whether l is at or before other in textual order.
func (l Location) LE(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column <= other.Column
}

// Before reports whether l is strictly before other in textual order.
func (l Location) Before(other Location) bool {
	return l != other && l.LE(other)
}

// String renders the location as "line:column".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Distance is a scalar proxy for how far apart two locations sit. Only
// comparisons between distances mean anything: line difference dominates,
// column difference orders locations on the same line. Used to break ties
// between two otherwise equal choices, never as a measurement.
func Distance(a, b Location) int {
	lines := a.Line - b.Line
	if lines < 0 {
		lines = -lines
	}
	cols := a.Column - b.Column
	if cols < 0 {
		cols = -cols
	}
	return lines*10000 + cols
}

// Region is a contiguous span of text from Begin to End, both inclusive.
// Begin never comes after End in a well-formed region.
type Region struct {
	Begin Location
	End   Location
}

// String renders the region as "begin-end".
func (r Region) String() string {
	return fmt.Sprintf("%s-%s", r.Begin, r.End)
}

// Contains reports whether the location falls inside the region. Both
// endpoints count as inside.
func (r Region) Contains(l Location) bool {
	return r.Begin.LE(l) && l.LE(r.End)
}

// Covers reports whether other lies entirely inside r.
func (r Region) Covers(other Region) bool {
	return r.Begin.LE(other.Begin) && other.End.LE(r.End)
}
