package view

import (
	"MetalPulse/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for a value that cannot be computed.
const Placeholder = "--"

// Summary is the content of the three summary cards.
type Summary struct {
	Ready       bool   `json:"ready"`
	Date        string `json:"date,omitempty"`
	GoldPrice   string `json:"gold_price,omitempty"`
	SilverPrice string `json:"silver_price,omitempty"`
	Ratio       string `json:"ratio,omitempty"`
}

// BuildSummary formats the most recent record. An empty series yields a
// zero Summary.
func BuildSummary(series []models.DailyRecord, currency string) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	last := series[len(series)-1]
	return Summary{
		Ready:       true,
		Date:        DateLabel(last.Date),
		GoldPrice:   Money(last.XAU, currency),
		SilverPrice: Money(last.XAG, currency),
		Ratio:       Ratio(last.XAU, last.XAG),
	}
}

// Money renders v with two decimals behind the currency symbol.
func Money(v *float64, currency string) string {
	if v == nil {
		return Placeholder
	}
	return currency + decimal.NewFromFloat(*v).StringFixed(2)
}

// Ratio renders num/den with two decimals.
func Ratio(num, den *float64) string {
	if num == nil || den == nil || *den == 0 {
		return Placeholder
	}
	return decimal.NewFromFloat(*num).Div(decimal.NewFromFloat(*den)).StringFixed(2)
}
