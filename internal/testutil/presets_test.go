package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weft/internal/fixture"
)

// runChecks proves a preset's recorded expectations against the sequence.
func runChecks(t *testing.T, fix *fixture.Fixture) {
	t.Helper()
	for _, c := range fix.Checks {
		got := fix.Sequence.Map(c.Query)
		if c.Back {
			got = fix.Sequence.MapBack(c.Query)
		}
		require.Equal(t, c.Want, got, "query %s", c.Query)
	}
}

func TestWithSingleUnit(t *testing.T) {
	fix := NewBuilder(t).WithSingleUnit().Fixture()

	require.Equal(t, "single", fix.Name)
	require.Equal(t, 3, fix.Sequence.Len())
	runChecks(t, fix)
}

func TestWithSplicedChunks(t *testing.T) {
	fix := NewBuilder(t).WithSplicedChunks().Fixture()

	require.Equal(t, "chunks", fix.Name)
	require.Len(t, fix.Checks, 3)
	runChecks(t, fix)
}

func TestWithSplicedChunks_MatchesDemo(t *testing.T) {
	built := NewBuilder(t).WithSplicedChunks().Fixture()
	demo := fixture.Demo()

	require.Equal(t, demo.Sequence.String(), built.Sequence.String())
	require.Equal(t, demo.Source, built.Source)
	require.Equal(t, demo.Derived, built.Derived)
}

func TestWithNestedUnits(t *testing.T) {
	fix := NewBuilder(t).WithNestedUnits().Fixture()

	require.Equal(t, "nested", fix.Name)
	require.Equal(t, 13, fix.Sequence.Len())
	runChecks(t, fix)
}
