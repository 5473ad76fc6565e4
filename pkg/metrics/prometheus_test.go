package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordFetch("data", 0.2, nil)
	r.RecordFetch("data", 0.1, errors.New("boom"))
	r.RecordLoad(false)
	r.RecordLastPrice("XAU", 2000)
	r.RecordChart("goldChart", "destroy")

	if got := testutil.ToFloat64(r.fetchErrors.WithLabelValues("data")); got != 1 {
		t.Fatalf("expected 1 fetch error, got %v", got)
	}
	if got := testutil.ToFloat64(r.loads.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed load, got %v", got)
	}
	if got := testutil.ToFloat64(r.lastPrice.WithLabelValues("XAU")); got != 2000 {
		t.Fatalf("unexpected price gauge %v", got)
	}
	if got := testutil.ToFloat64(r.charts.WithLabelValues("goldChart", "destroy")); got != 1 {
		t.Fatalf("unexpected chart counter %v", got)
	}
}
