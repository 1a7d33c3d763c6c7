package viewer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weft/internal/fixture"
	"github.com/zjrosen/weft/internal/weave"
)

func TestNewTextGrid_SplitsLines(t *testing.T) {
	g := newTextGrid("hello\nworld\n", weave.Location{})

	require.Equal(t, 2, g.lineCount())
	require.Equal(t, []string{"h", "e", "l", "l", "o"}, g.clusters(1))
	require.Equal(t, []string{"w", "o", "r", "l", "d"}, g.clusters(2))
	require.Nil(t, g.clusters(3))
	require.Nil(t, g.clusters(0))
}

func TestNewTextGrid_WideCharactersAreOneCell(t *testing.T) {
	g := newTextGrid("a🎉b", weave.Location{})

	require.Equal(t, []string{"a", "🎉", "b"}, g.clusters(1))
}

func TestNewTextGrid_EmptyTextSynthesizesPlaceholder(t *testing.T) {
	g := newTextGrid("", weave.Location{Line: 2, Column: 4})

	require.Equal(t, 2, g.lineCount())
	require.Equal(t, []string{"·", "·", "·", "·"}, g.clusters(1))
}

func TestClusterColumnAt(t *testing.T) {
	clusters := []string{"a", "🎉", "b"}

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"first cell", 0, 1},
		{"wide cluster first cell", 1, 2},
		{"wide cluster second cell", 2, 2},
		{"after wide cluster", 3, 3},
		{"past line end lands on last", 99, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, clusterColumnAt(clusters, tt.x))
		})
	}

	require.Equal(t, 1, clusterColumnAt(nil, 5), "empty line keeps the virtual cell")
}

func TestGridClamp(t *testing.T) {
	g := newTextGrid("hello\nhi\n\nlonger line", weave.Location{})

	tests := []struct {
		name string
		in   weave.Location
		want weave.Location
	}{
		{"inside", weave.Location{Line: 1, Column: 3}, weave.Location{Line: 1, Column: 3}},
		{"line too low", weave.Location{Line: 0, Column: 3}, weave.Location{Line: 1, Column: 3}},
		{"line too high", weave.Location{Line: 9, Column: 2}, weave.Location{Line: 4, Column: 2}},
		{"column past end", weave.Location{Line: 2, Column: 7}, weave.Location{Line: 2, Column: 2}},
		{"column too low", weave.Location{Line: 1, Column: 0}, weave.Location{Line: 1, Column: 1}},
		{"empty line keeps virtual cell", weave.Location{Line: 3, Column: 5}, weave.Location{Line: 3, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.clamp(tt.in))
		})
	}
}

func TestExtents_DemoFixture(t *testing.T) {
	seq := fixture.Demo().Sequence

	require.Equal(t, weave.Location{Line: 2, Column: 14}, sourceExtent(seq),
		"second token ends the source extent")
	require.Equal(t, weave.Location{Line: 3, Column: 15}, derivedExtent(seq),
		"root close ends the derived extent")
}
