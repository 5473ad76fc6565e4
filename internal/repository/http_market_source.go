package repository

import (
	"context"
	"fmt"
	"time"

	"MetalPulse/internal/domain/models"
	domrepo "MetalPulse/internal/domain/repository"
	"MetalPulse/pkg/config"
	xhttp "MetalPulse/pkg/http"
)

const (
	EndpointData     = "data"
	EndpointAnalysis = "analysis"
)

// HTTPMarketSource reads the payloads from the analysis backend over HTTP.
type HTTPMarketSource struct {
	client      *xhttp.Client
	dataURL     string
	analysisURL string
	metrics     domrepo.Metrics
}

// NewHTTPMarketSource builds a source from the upstream section of cfg.
func NewHTTPMarketSource(cfg *config.Config, client *xhttp.Client, metrics domrepo.Metrics) *HTTPMarketSource {
	if client == nil {
		client = xhttp.NewClient(xhttp.WithTimeout(cfg.Upstream.Timeout))
	}
	if metrics == nil {
		metrics = domrepo.NopMetrics{}
	}
	return &HTTPMarketSource{
		client:      client,
		dataURL:     cfg.UpstreamURL(cfg.Upstream.DataPath),
		analysisURL: cfg.UpstreamURL(cfg.Upstream.AnalysisPath),
		metrics:     metrics,
	}
}

func (s *HTTPMarketSource) FetchData(ctx context.Context) (*models.DataPayload, error) {
	var out models.DataPayload
	if err := s.get(ctx, EndpointData, s.dataURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPMarketSource) FetchAnalysis(ctx context.Context) (*models.AnalysisResult, error) {
	var out models.AnalysisResult
	if err := s.get(ctx, EndpointAnalysis, s.analysisURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPMarketSource) get(ctx context.Context, endpoint, url string, dest interface{}) error {
	start := time.Now()
	err := s.client.GetJSON(ctx, url, dest)
	s.metrics.RecordFetch(endpoint, time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	return nil
}

var _ domrepo.MarketSource = (*HTTPMarketSource)(nil)
