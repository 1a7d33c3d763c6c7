package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weft/internal/weave"
)

// mockManager is a hand-rolled testify mock of Manager.
type mockManager[V any] struct {
	mock.Mock
}

func (m *mockManager[V]) Get(ctx context.Context, key string) (V, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockManager[V]) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) (V, bool) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockManager[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockManager[V]) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockManager[V]) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func span(begin, end int) weave.Region {
	return weave.Region{
		Begin: weave.Location{Line: 1, Column: begin},
		End:   weave.Location{Line: 1, Column: end},
	}
}

func TestReadThrough_Get_SkipComputesFresh(t *testing.T) {
	manager := &mockManager[[]weave.Region]{}

	calls := 0
	rt := NewReadThrough[string, []weave.Region, weave.Region](
		manager,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			calls++
			return []weave.Region{q}, nil
		},
		true,
	)

	got, cached, err := rt.Get(context.Background(), "mapfwd:1:2-1:9", span(2, 9), time.Minute)
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, []weave.Region{span(2, 9)}, got)
	require.Equal(t, 1, calls)

	// Nothing should have touched the manager
	manager.AssertExpectations(t)
}

func TestReadThrough_Get_Hit(t *testing.T) {
	manager := &mockManager[[]weave.Region]{}
	manager.On("Get", mock.Anything, "mapfwd:1:2-1:9").Return([]weave.Region{span(0, 5)}, true)

	calls := 0
	rt := NewReadThrough[string, []weave.Region, weave.Region](
		manager,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			calls++
			return []weave.Region{q}, nil
		},
		false,
	)

	got, cached, err := rt.Get(context.Background(), "mapfwd:1:2-1:9", span(2, 9), time.Minute)
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, []weave.Region{span(0, 5)}, got)
	require.Zero(t, calls, "hit should not compute")

	manager.AssertExpectations(t)
}

func TestReadThrough_Get_MissComputesAndStores(t *testing.T) {
	manager := &mockManager[[]weave.Region]{}
	manager.On("Get", mock.Anything, "mapfwd:1:2-1:9").Return([]weave.Region(nil), false)
	manager.On("Set", mock.Anything, "mapfwd:1:2-1:9", []weave.Region{span(2, 9)}, time.Minute).Return()

	rt := NewReadThrough[string, []weave.Region, weave.Region](
		manager,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			return []weave.Region{q}, nil
		},
		false,
	)

	got, cached, err := rt.Get(context.Background(), "mapfwd:1:2-1:9", span(2, 9), time.Minute)
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, []weave.Region{span(2, 9)}, got)

	manager.AssertExpectations(t)
}

func TestReadThrough_Get_ComputeErrorNotStored(t *testing.T) {
	manager := &mockManager[[]weave.Region]{}
	manager.On("Get", mock.Anything, "mapfwd:1:2-1:9").Return([]weave.Region(nil), false)

	rt := NewReadThrough[string, []weave.Region, weave.Region](
		manager,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			return nil, errors.New("compute failed")
		},
		false,
	)

	_, cached, err := rt.Get(context.Background(), "mapfwd:1:2-1:9", span(2, 9), time.Minute)
	require.Error(t, err)
	require.False(t, cached)

	// No Set expectation registered, so AssertExpectations catches a store
	manager.AssertExpectations(t)
}

func TestReadThrough_GetWithRefresh_Hit(t *testing.T) {
	manager := &mockManager[[]weave.Region]{}
	manager.On("GetWithRefresh", mock.Anything, "mapback:1:2-1:3", time.Minute).
		Return([]weave.Region{span(4, 5)}, true)

	rt := NewReadThrough[string, []weave.Region, weave.Region](
		manager,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			t.Fatal("should not compute on hit")
			return nil, nil
		},
		false,
	)

	got, cached, err := rt.GetWithRefresh(context.Background(), "mapback:1:2-1:3", span(2, 3), time.Minute)
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, []weave.Region{span(4, 5)}, got)

	manager.AssertExpectations(t)
}

func TestReadThrough_GetWithRefresh_MissComputesAndStores(t *testing.T) {
	manager := &mockManager[[]weave.Region]{}
	manager.On("GetWithRefresh", mock.Anything, "mapback:1:2-1:3", time.Minute).
		Return([]weave.Region(nil), false)
	manager.On("Set", mock.Anything, "mapback:1:2-1:3", []weave.Region{span(2, 3)}, time.Minute).Return()

	rt := NewReadThrough[string, []weave.Region, weave.Region](
		manager,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			return []weave.Region{q}, nil
		},
		false,
	)

	got, cached, err := rt.GetWithRefresh(context.Background(), "mapback:1:2-1:3", span(2, 3), time.Minute)
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, []weave.Region{span(2, 3)}, got)

	manager.AssertExpectations(t)
}

func TestReadThrough_WithRealManager(t *testing.T) {
	inMemory := NewInMemory[string, []weave.Region]("queries", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	rt := NewReadThrough[string, []weave.Region, weave.Region](
		inMemory,
		func(ctx context.Context, q weave.Region) ([]weave.Region, error) {
			calls++
			return []weave.Region{q}, nil
		},
		false,
	)

	// First call computes, second is served from cache
	got1, cached1, err := rt.GetWithRefresh(context.Background(), "k", span(2, 9), time.Minute)
	require.NoError(t, err)
	require.False(t, cached1)

	got2, cached2, err := rt.GetWithRefresh(context.Background(), "k", span(2, 9), time.Minute)
	require.NoError(t, err)
	require.True(t, cached2)

	require.Equal(t, got1, got2)
	require.Equal(t, 1, calls)
}
