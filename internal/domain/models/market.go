package models

// Instrument identifies a tracked asset.
type Instrument string

const (
	Gold   Instrument = "XAU"
	Silver Instrument = "XAG"
)

// LevelKey is the key of the instrument in AnalysisResult.Levels.
func (i Instrument) LevelKey() string {
	switch i {
	case Gold:
		return "xau"
	case Silver:
		return "xag"
	}
	return ""
}

// DefaultSignal is assumed when a record carries no Signal.
const DefaultSignal = "Neutral"

// DailyRecord is one row of the upstream daily series. Numeric fields are
// nullable; a nil value breaks line continuity in charts.
type DailyRecord struct {
	Date     string   `json:"Date"`
	XAU      *float64 `json:"XAU"`
	XAG      *float64 `json:"XAG"`
	XAUMA50  *float64 `json:"XAU_MA50"`
	XAUMA200 *float64 `json:"XAU_MA200"`
	Signal   *string  `json:"Signal,omitempty"`
}

// SignalOrDefault returns the record's trading signal or DefaultSignal.
func (r DailyRecord) SignalOrDefault() string {
	if r.Signal == nil || *r.Signal == "" {
		return DefaultSignal
	}
	return *r.Signal
}

// Price returns the spot price for an instrument.
func (r DailyRecord) Price(i Instrument) *float64 {
	switch i {
	case Gold:
		return r.XAU
	case Silver:
		return r.XAG
	}
	return nil
}

// WeeklyRecord is one row of the optional weekly series.
type WeeklyRecord struct {
	Date  string   `json:"Date"`
	XAU   *float64 `json:"XAU"`
	XAG   *float64 `json:"XAG"`
	Ratio *float64 `json:"Gold_Silver_Ratio"`
}

// DataPayload is the body of GET /api/data. Daily is nil when the key is absent.
type DataPayload struct {
	Daily  []DailyRecord  `json:"daily"`
	Weekly []WeeklyRecord `json:"weekly,omitempty"`
}

// HasDaily reports whether the "daily" key was present.
func (p *DataPayload) HasDaily() bool {
	return p != nil && p.Daily != nil
}

// Float returns a pointer to v; handy for building fixtures.
func Float(v float64) *float64 { return &v }

// Str returns a pointer to s.
func Str(s string) *string { return &s }
