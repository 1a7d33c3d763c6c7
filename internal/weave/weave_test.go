package weave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Shorthand constructors for table literals.

func loc(line, col int) Location {
	return Location{Line: line, Column: col}
}

func reg(bl, bc, el, ec int) Region {
	return Region{Begin: loc(bl, bc), End: loc(el, ec)}
}

// colTok builds a token spanning two columns of line 1.
func colTok(b, e int) Marker {
	return Token(reg(1, b, 1, e))
}

// colOpen and colClose place unit boundaries on line 1 by column.
func colOpen(c int) Marker {
	return Open(loc(1, c))
}

func colClose(c int) Marker {
	return Close(loc(1, c))
}

func mustSequence(t *testing.T, markers ...Marker) *Sequence {
	t.Helper()
	s, err := NewSequence(markers)
	require.NoError(t, err)
	return s
}

// scenarioSequence is the straddling-units example used across the tests.
// One source line, one derived line; derived boundaries by column:
//
//	pos:   0      1        2      3        4      5        6      7        8      9        10
//	       open@0 tok(2,3) open@1 tok(3,4) open@2 tok(4,5) clos@3 tok(6,7) clos@4 tok(8,9) clos@5
//
// Depth before each position: 0 1 1 2 2 3 3 2 2 1 1.
func scenarioSequence(t *testing.T) *Sequence {
	t.Helper()
	return mustSequence(t,
		colOpen(0),
		colTok(2, 3),
		colOpen(1),
		colTok(3, 4),
		colOpen(2),
		colTok(4, 5),
		colClose(3),
		colTok(6, 7),
		colClose(4),
		colTok(8, 9),
		colClose(5),
	)
}

// gapSequence has two sibling units separated by a gap of the given depth:
//
//	pos:   0      1      2        3      4     5      6        7      8
//	       open@0 open@1 tok(1,2) clos@2 gap:d open@3 tok(3,4) clos@4 clos@5
func gapSequence(t *testing.T, depth int) *Sequence {
	t.Helper()
	return mustSequence(t,
		colOpen(0),
		colOpen(1),
		colTok(1, 2),
		colClose(2),
		Gap(depth),
		colOpen(3),
		colTok(3, 4),
		colClose(4),
		colClose(5),
	)
}
