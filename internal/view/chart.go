package view

import (
	"fmt"
	"strings"

	"MetalPulse/internal/domain/models"
	"MetalPulse/pkg/util"
)

// Chart slots, also used as element and chart IDs.
const (
	SlotGold   = "goldChart"
	SlotSilver = "silverChart"
	SlotRatio  = "ratioChart"
)

// Dash patterns for series lines.
const (
	DashSolid  = ""
	DashDotted = "dotted"
	DashDashed = "dashed"
)

// SeriesKind tells price lines from overlays and reference levels.
type SeriesKind string

const (
	KindPrice      SeriesKind = "price"
	KindAverage    SeriesKind = "average"
	KindSupport    SeriesKind = "support"
	KindResistance SeriesKind = "resistance"
)

// SeriesSpec is one line of a chart. A nil value breaks the line.
type SeriesSpec struct {
	Name   string     `json:"name"`
	Kind   SeriesKind `json:"kind"`
	Values []*float64 `json:"values"`
	Color  string     `json:"color"`
	Width  float32    `json:"width"`
	Dash   string     `json:"dash,omitempty"`
	Smooth bool       `json:"smooth,omitempty"`
}

// ChartSpec describes everything needed to draw one chart slot.
type ChartSpec struct {
	Slot    string       `json:"slot"`
	Title   string       `json:"title"`
	Labels  []string     `json:"labels"`
	Series  []SeriesSpec `json:"series"`
	Signals []string     `json:"signals,omitempty"`
}

// Levels returns the support and resistance series of the chart.
func (c ChartSpec) Levels() []SeriesSpec {
	var out []SeriesSpec
	for _, s := range c.Series {
		if s.Kind == KindSupport || s.Kind == KindResistance {
			out = append(out, s)
		}
	}
	return out
}

const (
	colorGold   = "#fbbf24"
	colorMA50   = "#38bdf8"
	colorMA200  = "#f472b6"
	colorSilver = "#cbd5e1"
	colorRatio  = "#a78bfa"
)

// DateLabel keeps the date portion of an ISO-8601 timestamp.
func DateLabel(s string) string {
	return util.DatePortion(s)
}

// IsNeutralSignal reports whether a signal adds nothing to the tooltip.
func IsNeutralSignal(s string) bool {
	return s == "" || strings.Contains(strings.ToLower(s), "neutral")
}

// BuildGoldChart builds the gold price chart with moving averages and levels.
func BuildGoldChart(series []models.DailyRecord, a *models.AnalysisResult) ChartSpec {
	spec := baseChart(SlotGold, "Gold Price (USD)", series)
	spec.Series = append(spec.Series,
		SeriesSpec{Name: "Gold Price (USD)", Kind: KindPrice, Values: column(series, func(r models.DailyRecord) *float64 { return r.XAU }), Color: colorGold, Width: 2, Smooth: true},
		SeriesSpec{Name: "50-Day MA", Kind: KindAverage, Values: column(series, func(r models.DailyRecord) *float64 { return r.XAUMA50 }), Color: colorMA50, Width: 1},
		SeriesSpec{Name: "200-Day MA", Kind: KindAverage, Values: column(series, func(r models.DailyRecord) *float64 { return r.XAUMA200 }), Color: colorMA200, Width: 1},
	)
	spec.Series = append(spec.Series, levelSeries(a.LevelsFor(models.Gold), len(series))...)
	return spec
}

// BuildSilverChart builds the silver price chart with levels.
func BuildSilverChart(series []models.DailyRecord, a *models.AnalysisResult) ChartSpec {
	spec := baseChart(SlotSilver, "Silver Price (USD)", series)
	spec.Series = append(spec.Series,
		SeriesSpec{Name: "Silver Price (USD)", Kind: KindPrice, Values: column(series, func(r models.DailyRecord) *float64 { return r.XAG }), Color: colorSilver, Width: 2, Smooth: true},
	)
	spec.Series = append(spec.Series, levelSeries(a.LevelsFor(models.Silver), len(series))...)
	return spec
}

// BuildRatioChart builds the weekly gold/silver ratio chart.
func BuildRatioChart(weekly []models.WeeklyRecord) ChartSpec {
	spec := ChartSpec{Slot: SlotRatio, Title: "Gold/Silver Ratio (Weekly)", Labels: make([]string, len(weekly))}
	values := make([]*float64, len(weekly))
	for i, w := range weekly {
		spec.Labels[i] = DateLabel(w.Date)
		values[i] = w.Ratio
	}
	spec.Series = []SeriesSpec{{Name: "Gold/Silver Ratio", Kind: KindPrice, Values: values, Color: colorRatio, Width: 2, Smooth: true}}
	return spec
}

func baseChart(slot, title string, series []models.DailyRecord) ChartSpec {
	spec := ChartSpec{
		Slot:    slot,
		Title:   title,
		Labels:  make([]string, len(series)),
		Signals: make([]string, len(series)),
	}
	for i, r := range series {
		spec.Labels[i] = DateLabel(r.Date)
		if sig := r.SignalOrDefault(); !IsNeutralSignal(sig) {
			spec.Signals[i] = sig
		}
	}
	return spec
}

func column(series []models.DailyRecord, pick func(models.DailyRecord) *float64) []*float64 {
	out := make([]*float64, len(series))
	for i, r := range series {
		out[i] = pick(r)
	}
	return out
}

func levelSeries(ls models.LevelSet, n int) []SeriesSpec {
	out := make([]SeriesSpec, 0, len(ls.Supports)+len(ls.Resistances))
	for _, v := range ls.Supports {
		out = append(out, flat(fmt.Sprintf("Support %.2f", v), KindSupport, v, n, ColorPositive, DashDotted))
	}
	for _, v := range ls.Resistances {
		out = append(out, flat(fmt.Sprintf("Resistance %.2f", v), KindResistance, v, n, ColorNegative, DashDashed))
	}
	return out
}

func flat(name string, kind SeriesKind, v float64, n int, color, dash string) SeriesSpec {
	values := make([]*float64, n)
	for i := range values {
		values[i] = &v
	}
	return SeriesSpec{Name: name, Kind: kind, Values: values, Color: color, Width: 1, Dash: dash}
}
