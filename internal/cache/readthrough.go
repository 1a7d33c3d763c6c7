package cache

import (
	"context"
	"time"
)

// ReadThrough pairs a Manager with the function that computes values on a
// miss. The bool in each return reports whether the value came from the
// cache, which sessions record on their query spans.
type ReadThrough[K ~string, V any, I any] struct {
	cache Manager[K, V]
	fn    func(ctx context.Context, input I) (V, error)
	skip  bool
}

// NewReadThrough builds a read-through cache. With skip set the cache is
// bypassed entirely and every Get computes fresh.
func NewReadThrough[K ~string, V any, I any](
	cache Manager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	skip bool,
) *ReadThrough[K, V, I] {
	return &ReadThrough[K, V, I]{
		cache: cache,
		fn:    fn,
		skip:  skip,
	}
}

// Get returns the cached value for key, computing and storing it from
// input on a miss.
func (r *ReadThrough[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, bool, error) {
	if r.skip {
		v, err := r.fn(ctx, input)
		return v, false, err
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, false, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, false, nil
}

// GetWithRefresh behaves like Get but re-arms the TTL on a hit, keeping
// entries warm while they are being queried.
func (r *ReadThrough[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (V, bool, error) {
	if r.skip {
		v, err := r.fn(ctx, input)
		return v, false, err
	}

	if value, ok := r.cache.GetWithRefresh(ctx, key, ttl); ok {
		return value, true, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, false, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, false, nil
}
