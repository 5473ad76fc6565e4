package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestMemoryCacheExpires(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	mc := NewMemoryCache(WithMemoryClock(clk.now))
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "analysis", []byte(`{"trend":"Bullish"}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if b, err := mc.Get(ctx, "analysis"); err != nil || string(b) != `{"trend":"Bullish"}` {
		t.Fatalf("unexpected get %q %v", b, err)
	}

	clk.t = clk.t.Add(2 * time.Minute)
	if _, err := mc.Get(ctx, "analysis"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after ttl, got %v", err)
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	mc := NewMemoryCache(WithMemoryMaxSize(2), WithMemoryClock(clk.now))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", []byte("1"), time.Hour)
	clk.t = clk.t.Add(time.Second)
	_ = mc.Set(ctx, "b", []byte("2"), time.Hour)
	clk.t = clk.t.Add(time.Second)
	_, _ = mc.Get(ctx, "a")
	clk.t = clk.t.Add(time.Second)
	_ = mc.Set(ctx, "c", []byte("3"), time.Hour)

	if _, err := mc.Get(ctx, "b"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	if mc.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", mc.Len())
	}
}

func TestLayeredPromotesFromL2(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l1, l2, time.Minute)
	defer lc.Close()

	_ = l2.Set(ctx, "data", []byte("payload"), time.Hour)
	if b, err := lc.Get(ctx, "data"); err != nil || string(b) != "payload" {
		t.Fatalf("unexpected %q %v", b, err)
	}
	if _, err := l1.Get(ctx, "data"); err != nil {
		t.Fatalf("expected promotion into l1: %v", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	type payload struct {
		Trend string `json:"trend"`
	}
	if err := SetJSON(ctx, mc, "k", payload{Trend: "Bearish"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := GetJSON[payload](ctx, mc, "k")
	if err != nil || got.Trend != "Bearish" {
		t.Fatalf("unexpected %+v %v", got, err)
	}
}
