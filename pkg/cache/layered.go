package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through an in-process L1 to a shared L2.
type LayeredCache struct {
	l1    *MemoryCache
	l2    Service
	l1TTL time.Duration
}

// NewLayeredCache puts mem in front of shared. l1TTL bounds how long a value
// promoted from L2 is kept locally.
func NewLayeredCache(mem *MemoryCache, shared Service, l1TTL time.Duration) *LayeredCache {
	return &LayeredCache{l1: mem, l2: shared, l1TTL: l1TTL}
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if b, err := lc.l1.Get(ctx, key); err == nil {
		return b, nil
	}
	b, err := lc.l2.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = lc.l1.Set(ctx, key, b, lc.l1TTL)
	return b, nil
}

// Set writes through: L2 first, then L1.
func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := lc.l2.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	l1TTL := lc.l1TTL
	if ttl > 0 && ttl < l1TTL {
		l1TTL = ttl
	}
	return lc.l1.Set(ctx, key, value, l1TTL)
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.l1.Delete(ctx, keys...)
	return lc.l2.Delete(ctx, keys...)
}

// Close closes both layers.
func (lc *LayeredCache) Close() error {
	return errors.Join(lc.l1.Close(), lc.l2.Close())
}
