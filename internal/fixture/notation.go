package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/weft/internal/weave"
)

// ParseLocation parses the "L:C" notation used throughout fixtures and on
// the command line.
func ParseLocation(s string) (weave.Location, error) {
	line, col, ok := strings.Cut(s, ":")
	if !ok {
		return weave.Location{}, fmt.Errorf("location %q: want L:C", s)
	}
	l, err := strconv.Atoi(line)
	if err != nil {
		return weave.Location{}, fmt.Errorf("location %q: bad line", s)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return weave.Location{}, fmt.Errorf("location %q: bad column", s)
	}
	return weave.Location{Line: l, Column: c}, nil
}

// ParseRegion parses "L:C-L:C". A bare "L:C" is the degenerate region.
func ParseRegion(s string) (weave.Region, error) {
	begin, end, ok := strings.Cut(s, "-")
	if !ok {
		at, err := ParseLocation(s)
		if err != nil {
			return weave.Region{}, err
		}
		return weave.Region{Begin: at, End: at}, nil
	}

	b, err := ParseLocation(begin)
	if err != nil {
		return weave.Region{}, fmt.Errorf("region %q: %w", s, err)
	}
	e, err := ParseLocation(end)
	if err != nil {
		return weave.Region{}, fmt.Errorf("region %q: %w", s, err)
	}
	if !b.LE(e) {
		return weave.Region{}, fmt.Errorf("region %q: begins after it ends", s)
	}
	return weave.Region{Begin: b, End: e}, nil
}
