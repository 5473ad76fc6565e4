package repository

import (
	"context"

	"MetalPulse/internal/domain/models"
)

// MarketSource fetches the two precomputed payloads from the analysis backend.
type MarketSource interface {
	FetchData(ctx context.Context) (*models.DataPayload, error)
	FetchAnalysis(ctx context.Context) (*models.AnalysisResult, error)
}

// Metrics is the observability port used by the loader, source and renderer.
type Metrics interface {
	RecordFetch(endpoint string, seconds float64, err error)
	RecordLoad(ok bool)
	RecordLastPrice(instrument string, price float64)
	RecordChart(slot, event string)
	RecordCacheLookup(endpoint string, hit bool)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string, float64, error) {}
func (NopMetrics) RecordLoad(bool)                    {}
func (NopMetrics) RecordLastPrice(string, float64)    {}
func (NopMetrics) RecordChart(string, string)         {}
func (NopMetrics) RecordCacheLookup(string, bool)     {}
