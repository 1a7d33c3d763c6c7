package engine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weft/internal/engine"
	"github.com/zjrosen/weft/internal/fixture"
	"github.com/zjrosen/weft/internal/weave"
)

func TestSession_MapMatchesSequence(t *testing.T) {
	fix := fixture.Demo()
	s := engine.NewSession(fix, "", engine.DefaultConfig())
	defer s.Close()

	ctx := context.Background()
	queries := []weave.Region{
		reg(1, 8, 2, 14),
		reg(1, 9, 1, 10),
		reg(2, 8, 2, 14),
		reg(1, 1, 1, 1),
	}
	for _, q := range queries {
		t.Run(q.String(), func(t *testing.T) {
			got, err := s.Map(ctx, q)
			require.NoError(t, err)
			require.Equal(t, fix.Sequence.Map(q), got)
		})
	}
}

func TestSession_MapBackMatchesSequence(t *testing.T) {
	fix := fixture.Demo()
	s := engine.NewSession(fix, "", engine.DefaultConfig())
	defer s.Close()

	ctx := context.Background()
	queries := []weave.Region{
		reg(3, 2, 3, 9),
		reg(1, 2, 1, 14),
		reg(2, 1, 2, 5),
	}
	for _, q := range queries {
		t.Run(q.String(), func(t *testing.T) {
			got, err := s.MapBack(ctx, q)
			require.NoError(t, err)
			require.Equal(t, fix.Sequence.MapBack(q), got)
		})
	}
}

func TestSession_ReversedQueryNormalized(t *testing.T) {
	fix := fixture.Demo()
	s := engine.NewSession(fix, "", engine.DefaultConfig())
	defer s.Close()

	ctx := context.Background()
	forward, err := s.Map(ctx, reg(1, 8, 2, 14))
	require.NoError(t, err)
	reversed, err := s.Map(ctx, reg(2, 14, 1, 8))
	require.NoError(t, err)
	require.Equal(t, forward, reversed)
}

func TestRace_ConcurrentQueriesAndReload(t *testing.T) {
	path := writeFixture(t, fixtureV1)
	s := loadSession(t, path, engine.DefaultConfig())

	ctx := context.Background()
	want := []weave.Region{reg(1, 1, 1, 20)}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 30; i++ {
				got, err := s.Map(ctx, reg(1, 4, 1, 4+i%6))
				if err != nil || len(got) != 1 || got[0] != want[0] {
					t.Errorf("query %d: got %v err %v", i, got, err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			if err := s.Reload(ctx); err != nil {
				t.Errorf("reload: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
