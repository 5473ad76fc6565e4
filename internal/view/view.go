// Package view projects a loaded session into typed view models.
package view

import (
	"MetalPulse/internal/domain/models"
)

// Options carries display settings shared by every builder.
type Options struct {
	Title      string
	Currency   string
	EventLimit int
}

// Page is the full view model of one dashboard render.
type Page struct {
	Title     string      `json:"title"`
	Summary   Summary     `json:"summary"`
	Dashboard Dashboard   `json:"dashboard"`
	Charts    []ChartSpec `json:"charts,omitempty"`
}

// BuildPage runs every builder whose input is present. Missing daily data
// suppresses summary and charts; a missing trend suppresses the dashboard.
func BuildPage(data *models.DataPayload, a *models.AnalysisResult, o Options) Page {
	p := Page{Title: o.Title}
	if data.HasDaily() {
		p.Summary = BuildSummary(data.Daily, o.Currency)
		p.Charts = append(p.Charts, BuildGoldChart(data.Daily, a), BuildSilverChart(data.Daily, a))
		if len(data.Weekly) > 0 {
			p.Charts = append(p.Charts, BuildRatioChart(data.Weekly))
		}
	}
	p.Dashboard = BuildDashboard(a, DashboardOptions{Currency: o.Currency, EventLimit: o.EventLimit})
	return p
}

// Chart returns the spec for a slot.
func (p Page) Chart(slot string) (ChartSpec, bool) {
	for _, c := range p.Charts {
		if c.Slot == slot {
			return c, true
		}
	}
	return ChartSpec{}, false
}
