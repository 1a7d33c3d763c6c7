// Package testutil builds marker sequences and fixtures for tests without
// going through the YAML round trip.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weft/internal/fixture"
	"github.com/zjrosen/weft/internal/weave"
)

// Builder accumulates markers and checks, then assembles a validated
// sequence or a complete fixture.
type Builder struct {
	t       *testing.T
	name    string
	desc    string
	source  string
	derived string
	markers []weave.Marker
	checks  []fixture.Check
}

// NewBuilder creates a builder for one test fixture.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, name: "test"}
}

// Named sets the fixture name.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Described sets the fixture description.
func (b *Builder) Described(desc string) *Builder {
	b.desc = desc
	return b
}

// WithSource sets the source text.
func (b *Builder) WithSource(text string) *Builder {
	b.source = text
	return b
}

// WithDerived sets the derived text.
func (b *Builder) WithDerived(text string) *Builder {
	b.derived = text
	return b
}

// Open appends a unit-opening marker at a derived location, "L:C".
func (b *Builder) Open(at string) *Builder {
	b.markers = append(b.markers, weave.Open(b.location(at)))
	return b
}

// Close appends a unit-closing marker at a derived location, "L:C".
func (b *Builder) Close(at string) *Builder {
	b.markers = append(b.markers, weave.Close(b.location(at)))
	return b
}

// Token appends a token marker for a source region, "L:C-L:C".
func (b *Builder) Token(region string) *Builder {
	b.markers = append(b.markers, weave.Token(b.region(region)))
	return b
}

// Gap appends a gap marker at the given depth.
func (b *Builder) Gap(depth int) *Builder {
	b.markers = append(b.markers, weave.Gap(depth))
	return b
}

// Check adds a forward expectation: mapping query yields want, in order.
func (b *Builder) Check(query string, want ...string) *Builder {
	b.checks = append(b.checks, fixture.Check{Query: b.region(query), Want: b.regions(want)})
	return b
}

// CheckBack adds a reverse expectation for MapBack.
func (b *Builder) CheckBack(query string, want ...string) *Builder {
	b.checks = append(b.checks, fixture.Check{Query: b.region(query), Back: true, Want: b.regions(want)})
	return b
}

// Sequence validates the accumulated markers and builds the sequence.
func (b *Builder) Sequence() *weave.Sequence {
	b.t.Helper()
	seq, err := weave.NewSequence(b.markers)
	require.NoError(b.t, err)
	return seq
}

// Fixture assembles the complete fixture.
func (b *Builder) Fixture() *fixture.Fixture {
	b.t.Helper()
	return &fixture.Fixture{
		Name:        b.name,
		Description: b.desc,
		Source:      b.source,
		Derived:     b.derived,
		Sequence:    b.Sequence(),
		Checks:      b.checks,
	}
}

func (b *Builder) location(s string) weave.Location {
	b.t.Helper()
	loc, err := fixture.ParseLocation(s)
	require.NoError(b.t, err)
	return loc
}

func (b *Builder) region(s string) weave.Region {
	b.t.Helper()
	r, err := fixture.ParseRegion(s)
	require.NoError(b.t, err)
	return r
}

func (b *Builder) regions(ss []string) []weave.Region {
	b.t.Helper()
	out := make([]weave.Region, len(ss))
	for i, s := range ss {
		out[i] = b.region(s)
	}
	return out
}
