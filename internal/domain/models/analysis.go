package models

// Prediction is the upstream linear forecast summary.
type Prediction struct {
	Outlook        string    `json:"outlook"`
	Slope          float64   `json:"slope"`
	Intercept      float64   `json:"intercept,omitempty"`
	ForecastPrices []float64 `json:"forecast_prices"`
}

// MarketEvent is a notable rally or dip, newest first in the payload.
type MarketEvent struct {
	Date         string `json:"Date"`
	Type         string `json:"Type"`
	Description  string `json:"Description"`
	Significance string `json:"Significance,omitempty"`
}

// EventRally is the only event type rendered with the positive color.
const EventRally = "Rally"

// LevelSet holds horizontal price levels for one instrument.
type LevelSet struct {
	Supports    []float64 `json:"supports"`
	Resistances []float64 `json:"resistances"`
}

// AnalysisResult is the body of GET /api/analysis.
type AnalysisResult struct {
	Trend        string              `json:"trend"`
	MomentumText string              `json:"momentum_text,omitempty"`
	Prediction   Prediction          `json:"prediction"`
	MarketEvents []MarketEvent       `json:"market_events,omitempty"`
	Levels       map[string]LevelSet `json:"levels,omitempty"`
}

// HasTrend reports whether the "trend" key carried a value.
func (a *AnalysisResult) HasTrend() bool {
	return a != nil && a.Trend != ""
}

// LevelsFor returns the level set for an instrument, zero when absent.
func (a *AnalysisResult) LevelsFor(i Instrument) LevelSet {
	if a == nil || a.Levels == nil {
		return LevelSet{}
	}
	return a.Levels[i.LevelKey()]
}
