package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the dashboard's Metrics port using Prometheus.
type Recorder struct {
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec
	loads        *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	charts       *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// New registers the dashboard collectors on reg. Pass nil for the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "metalpulse_upstream_fetch_seconds",
				Help:    "Latency of upstream payload fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalpulse_upstream_fetch_errors_total",
				Help: "Upstream fetch or decode failures",
			},
			[]string{"endpoint"},
		),
		loads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalpulse_dashboard_loads_total",
				Help: "Dashboard load cycles by outcome",
			},
			[]string{"result"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "metalpulse_last_price",
				Help: "Last spot price seen in the daily series",
			},
			[]string{"instrument"},
		),
		charts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalpulse_chart_instances_total",
				Help: "Chart instances mounted and destroyed per slot",
			},
			[]string{"slot", "event"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalpulse_payload_cache_lookups_total",
				Help: "Payload cache lookups by result",
			},
			[]string{"endpoint", "result"},
		),
	}
}

// RecordFetch records one upstream fetch.
func (r *Recorder) RecordFetch(endpoint string, seconds float64, err error) {
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
	if err != nil {
		r.fetchErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordLoad records the outcome of a full load cycle.
func (r *Recorder) RecordLoad(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	r.loads.WithLabelValues(result).Inc()
}

// RecordLastPrice records the last price for an instrument.
func (r *Recorder) RecordLastPrice(instrument string, price float64) {
	r.lastPrice.WithLabelValues(instrument).Set(price)
}

// RecordChart records a chart lifecycle event ("mount" or "destroy").
func (r *Recorder) RecordChart(slot, event string) {
	r.charts.WithLabelValues(slot, event).Inc()
}

// RecordCacheLookup records a payload cache hit or miss.
func (r *Recorder) RecordCacheLookup(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(endpoint, result).Inc()
}
