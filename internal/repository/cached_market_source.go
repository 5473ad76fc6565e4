package repository

import (
	"context"
	"errors"
	"time"

	"MetalPulse/internal/domain/models"
	domrepo "MetalPulse/internal/domain/repository"
	"MetalPulse/pkg/cache"
	applogger "MetalPulse/pkg/logger"
)

const (
	cacheKeyData     = "payload:data"
	cacheKeyAnalysis = "payload:analysis"
)

// CachedMarketSource serves payloads from a TTL cache and falls through to
// the wrapped source on a miss. Only successful fetches are stored.
type CachedMarketSource struct {
	next    domrepo.MarketSource
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewCachedMarketSource(next domrepo.MarketSource, c cache.Service, ttl time.Duration, metrics domrepo.Metrics, l *applogger.Logger) *CachedMarketSource {
	if metrics == nil {
		metrics = domrepo.NopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &CachedMarketSource{next: next, cache: c, ttl: ttl, metrics: metrics, log: l}
}

func (s *CachedMarketSource) FetchData(ctx context.Context) (*models.DataPayload, error) {
	return cachedFetch(ctx, s, EndpointData, cacheKeyData, s.next.FetchData)
}

func (s *CachedMarketSource) FetchAnalysis(ctx context.Context) (*models.AnalysisResult, error) {
	return cachedFetch(ctx, s, EndpointAnalysis, cacheKeyAnalysis, s.next.FetchAnalysis)
}

// Invalidate drops both cached payloads.
func (s *CachedMarketSource) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, cacheKeyData, cacheKeyAnalysis)
}

func cachedFetch[T any](ctx context.Context, s *CachedMarketSource, endpoint, key string, fetch func(context.Context) (*T, error)) (*T, error) {
	v, err := cache.GetJSON[T](ctx, s.cache, key)
	switch {
	case err == nil:
		s.metrics.RecordCacheLookup(endpoint, true)
		return &v, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		s.log.Warn("payload cache read failed", applogger.String("endpoint", endpoint), applogger.Error(err))
	}
	s.metrics.RecordCacheLookup(endpoint, false)

	fresh, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, key, fresh, s.ttl); err != nil {
		s.log.Warn("payload cache write failed", applogger.String("endpoint", endpoint), applogger.Error(err))
	}
	return fresh, nil
}

var _ domrepo.MarketSource = (*CachedMarketSource)(nil)
