package view

import (
	"fmt"
	"strings"

	"MetalPulse/internal/domain/models"

	"github.com/shopspring/decimal"
)

// TrendClass is the CSS state attached to the trend indicator.
type TrendClass string

const (
	TrendBullish TrendClass = "bullish"
	TrendBearish TrendClass = "bearish"
	TrendNeutral TrendClass = "neutral"
)

const (
	PhraseUpward   = "Upward slope detected in recent price action."
	PhraseDownward = "Downward pressure observed."
)

const (
	ColorPositive = "#22c55e"
	ColorNegative = "#ef4444"
)

// Phases lists the market lifecycle indicators in display order.
var Phases = []string{"Accumulation", "Expansion", "Distribution", "Correction"}

const (
	PhaseAccumulation = 0
	PhaseExpansion    = 1
	PhaseCorrection   = 3
)

// DefaultEventLimit caps the events list.
const DefaultEventLimit = 5

// Phase is one lifecycle indicator.
type Phase struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Event is one rendered market event.
type Event struct {
	Date         string `json:"date"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Significance string `json:"significance,omitempty"`
	Color        string `json:"color"`
}

// Dashboard is the analysis panel.
type Dashboard struct {
	Ready         bool       `json:"ready"`
	Trend         string     `json:"trend,omitempty"`
	TrendClass    TrendClass `json:"trend_class,omitempty"`
	Momentum      string     `json:"momentum,omitempty"`
	Outlook       string     `json:"outlook,omitempty"`
	Slope         float64    `json:"slope"`
	Intercept     float64    `json:"intercept,omitempty"`
	Phases        []Phase    `json:"phases,omitempty"`
	ActivePhase   int        `json:"active_phase"`
	TargetZone    string     `json:"target_zone,omitempty"`
	EventsSection bool       `json:"events_section"`
	Events        []Event    `json:"events,omitempty"`
}

// DashboardOptions tunes BuildDashboard.
type DashboardOptions struct {
	Currency   string
	EventLimit int
}

// ClassifyTrend maps free-form trend text to a state class by substring.
// "Bullish" wins when both words appear.
func ClassifyTrend(trend string) TrendClass {
	switch {
	case strings.Contains(trend, "Bullish"):
		return TrendBullish
	case strings.Contains(trend, "Bearish"):
		return TrendBearish
	default:
		return TrendNeutral
	}
}

// OutlookText joins the outlook with a phrase picked by the slope sign.
// A zero slope takes the downward phrase; there is no flat case.
func OutlookText(outlook string, slope float64) string {
	phrase := PhraseDownward
	if slope > 0 {
		phrase = PhraseUpward
	}
	return fmt.Sprintf("Outlook: %s. %s", outlook, phrase)
}

// ActivePhase matches the trend exactly, unlike ClassifyTrend.
func ActivePhase(trend string) int {
	switch trend {
	case "Bullish":
		return PhaseExpansion
	case "Bearish":
		return PhaseCorrection
	default:
		return PhaseAccumulation
	}
}

// TargetZone renders the last forecast rounded to a whole unit, or "" when
// there is no forecast.
func TargetZone(forecast []float64, currency string) string {
	if len(forecast) == 0 {
		return ""
	}
	return currency + decimal.NewFromFloat(forecast[len(forecast)-1]).StringFixed(0)
}

// EventColor is green for rallies and red for everything else.
func EventColor(typ string) string {
	if typ == models.EventRally {
		return ColorPositive
	}
	return ColorNegative
}

// BuildDashboard projects an analysis payload. A payload without a trend
// yields a zero Dashboard.
func BuildDashboard(a *models.AnalysisResult, o DashboardOptions) Dashboard {
	if !a.HasTrend() {
		return Dashboard{}
	}
	if o.EventLimit <= 0 {
		o.EventLimit = DefaultEventLimit
	}

	active := ActivePhase(a.Trend)
	phases := make([]Phase, len(Phases))
	for i, name := range Phases {
		phases[i] = Phase{Name: name, Active: i == active}
	}

	d := Dashboard{
		Ready:       true,
		Trend:       a.Trend,
		TrendClass:  ClassifyTrend(a.Trend),
		Momentum:    a.MomentumText,
		Outlook:     OutlookText(a.Prediction.Outlook, a.Prediction.Slope),
		Slope:       a.Prediction.Slope,
		Intercept:   a.Prediction.Intercept,
		Phases:      phases,
		ActivePhase: active,
		TargetZone:  TargetZone(a.Prediction.ForecastPrices, o.Currency),
	}

	if len(a.MarketEvents) > 0 {
		d.EventsSection = true
		n := min(len(a.MarketEvents), o.EventLimit)
		d.Events = make([]Event, 0, n)
		for _, e := range a.MarketEvents[:n] {
			d.Events = append(d.Events, Event{
				Date:         DateLabel(e.Date),
				Type:         e.Type,
				Description:  e.Description,
				Significance: e.Significance,
				Color:        EventColor(e.Type),
			})
		}
	}
	return d
}
