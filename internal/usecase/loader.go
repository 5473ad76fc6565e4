package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MetalPulse/internal/domain/models"
	drepo "MetalPulse/internal/domain/repository"
	applogger "MetalPulse/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ErrLoadFailed wraps any transport, status or decode failure of either payload.
var ErrLoadFailed = errors.New("dashboard load failed")

// Session is the result of one page load. It is never shared between loads.
type Session struct {
	Data     *models.DataPayload
	Analysis *models.AnalysisResult
	LoadedAt time.Time
}

// HasDaily reports whether the chart and summary path should render.
func (s *Session) HasDaily() bool {
	return s != nil && s.Data.HasDaily()
}

// HasAnalysis reports whether the dashboard path should render.
func (s *Session) HasAnalysis() bool {
	return s != nil && s.Analysis.HasTrend()
}

// DashboardLoader fetches both payloads for a page load.
type DashboardLoader struct {
	source  drepo.MarketSource
	metrics drepo.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

// NewDashboardLoader creates a new DashboardLoader instance.
func NewDashboardLoader(source drepo.MarketSource, metrics drepo.Metrics, l *applogger.Logger) *DashboardLoader {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &DashboardLoader{source: source, metrics: metrics, log: l, now: time.Now}
}

// Load issues both fetches concurrently and waits for both. If either fails
// the whole load fails and no session is returned.
func (d *DashboardLoader) Load(ctx context.Context) (*Session, error) {
	var (
		data     *models.DataPayload
		analysis *models.AnalysisResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = d.source.FetchData(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		analysis, err = d.source.FetchAnalysis(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		d.metrics.RecordLoad(false)
		d.log.Error("dashboard load failed", applogger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	d.metrics.RecordLoad(true)
	d.recordLastPrices(data)

	return &Session{Data: data, Analysis: analysis, LoadedAt: d.now()}, nil
}

func (d *DashboardLoader) recordLastPrices(data *models.DataPayload) {
	if data == nil || len(data.Daily) == 0 {
		return
	}
	last := data.Daily[len(data.Daily)-1]
	for _, in := range []models.Instrument{models.Gold, models.Silver} {
		if p := last.Price(in); p != nil {
			d.metrics.RecordLastPrice(string(in), *p)
		}
	}
}
