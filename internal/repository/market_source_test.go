package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"MetalPulse/internal/domain/models"
	"MetalPulse/pkg/cache"
	"MetalPulse/pkg/config"
	xhttp "MetalPulse/pkg/http"
)

const (
	dataBody     = `{"daily":[{"Date":"2024-01-02","XAU":2050.5,"XAG":23.1,"XAU_MA50":null,"XAU_MA200":null,"Signal":"Hold/Neutral"}]}`
	analysisBody = `{"trend":"Bullish","momentum_text":"Strong","prediction":{"outlook":"Bullish","slope":0.42,"forecast_prices":[2060,2070]},"market_events":[{"Date":"2024-01-02","Type":"Rally","Description":"up 3%"}],"levels":{"xau":{"supports":[2000],"resistances":[2100]}}}`
)

type countingMetrics struct {
	fetches int32
	hits    int32
	misses  int32
}

func (m *countingMetrics) RecordFetch(string, float64, error) { atomic.AddInt32(&m.fetches, 1) }
func (m *countingMetrics) RecordLoad(bool)                    {}
func (m *countingMetrics) RecordLastPrice(string, float64)    {}
func (m *countingMetrics) RecordChart(string, string)         {}
func (m *countingMetrics) RecordCacheLookup(_ string, hit bool) {
	if hit {
		atomic.AddInt32(&m.hits, 1)
		return
	}
	atomic.AddInt32(&m.misses, 1)
}

func newUpstream(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/data", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_, _ = w.Write([]byte(dataBody))
	})
	mux.HandleFunc("/api/analysis", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_, _ = w.Write([]byte(analysisBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("upstream:\n  base_url: " + baseURL + "\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestHTTPMarketSourceDecodesPayloads(t *testing.T) {
	var calls int32
	srv := newUpstream(t, &calls)
	m := &countingMetrics{}
	src := NewHTTPMarketSource(testConfig(t, srv.URL), xhttp.NewClient(), m)

	data, err := src.FetchData(context.Background())
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(data.Daily) != 1 || *data.Daily[0].XAU != 2050.5 || data.Daily[0].XAUMA50 != nil {
		t.Fatalf("unexpected daily %+v", data.Daily)
	}
	if data.Daily[0].SignalOrDefault() != "Hold/Neutral" {
		t.Fatalf("unexpected signal %q", data.Daily[0].SignalOrDefault())
	}

	an, err := src.FetchAnalysis(context.Background())
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if an.Trend != "Bullish" || an.Prediction.Slope != 0.42 {
		t.Fatalf("unexpected analysis %+v", an)
	}
	if lv := an.LevelsFor(models.Gold); len(lv.Supports) != 1 || lv.Resistances[0] != 2100 {
		t.Fatalf("unexpected levels %+v", lv)
	}
	if m.fetches != 2 {
		t.Fatalf("expected 2 recorded fetches, got %d", m.fetches)
	}
}

func TestHTTPMarketSourceWrapsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to load data"}`))
	}))
	defer srv.Close()

	src := NewHTTPMarketSource(testConfig(t, srv.URL), nil, nil)
	_, err := src.FetchData(context.Background())
	var se *xhttp.StatusError
	if !errors.As(err, &se) || se.Message() != "Failed to load data" {
		t.Fatalf("expected wrapped status error, got %v", err)
	}
}

func TestCachedMarketSourceServesFromCache(t *testing.T) {
	var calls int32
	srv := newUpstream(t, &calls)
	m := &countingMetrics{}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	src := NewCachedMarketSource(NewHTTPMarketSource(testConfig(t, srv.URL), nil, nil), mc, time.Hour, m, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := src.FetchData(ctx); err != nil {
			t.Fatalf("data: %v", err)
		}
		if _, err := src.FetchAnalysis(ctx); err != nil {
			t.Fatalf("analysis: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected one upstream call per endpoint, got %d", calls)
	}
	if m.misses != 2 || m.hits != 4 {
		t.Fatalf("unexpected lookups hits=%d misses=%d", m.hits, m.misses)
	}

	if err := src.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := src.FetchData(ctx); err != nil {
		t.Fatalf("data: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected refetch after invalidate, got %d calls", calls)
	}
}

func TestCachedMarketSourceSkipsFailures(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(dataBody))
	}))
	defer srv.Close()

	mc := cache.NewMemoryCache()
	defer mc.Close()
	src := NewCachedMarketSource(NewHTTPMarketSource(testConfig(t, srv.URL), nil, nil), mc, time.Hour, nil, nil)

	if _, err := src.FetchData(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if mc.Len() != 0 {
		t.Fatalf("failed fetch must not be cached")
	}
	fail.Store(false)
	if _, err := src.FetchData(context.Background()); err != nil {
		t.Fatalf("data: %v", err)
	}
}
