package render

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"MetalPulse/internal/domain/models"
	"MetalPulse/internal/view"
)

type chartEvents struct {
	mu     sync.Mutex
	events []string
}

func (c *chartEvents) RecordFetch(string, float64, error) {}
func (c *chartEvents) RecordLoad(bool)                    {}
func (c *chartEvents) RecordLastPrice(string, float64)    {}
func (c *chartEvents) RecordCacheLookup(string, bool)     {}
func (c *chartEvents) RecordChart(slot, event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, slot+":"+event)
}

func goldSpec() view.ChartSpec {
	series := []models.DailyRecord{
		{Date: "2024-01-01", XAU: models.Float(2000), XAUMA50: models.Float(1980)},
		{Date: "2024-01-02", XAU: models.Float(2010), Signal: models.Str("Technical Bullish Zone (Entry Watch)")},
	}
	a := &models.AnalysisResult{Levels: map[string]models.LevelSet{"xau": {Resistances: []float64{2100}}}}
	return view.BuildGoldChart(series, a)
}

func TestMountReplacesPriorInstance(t *testing.T) {
	m := &chartEvents{}
	r := NewRegistry(ChartOptions{Theme: "dark"}, m, nil)

	first := r.Mount(goldSpec())
	second := r.Mount(goldSpec())

	if !first.Destroyed() {
		t.Fatalf("expected first instance destroyed")
	}
	if second.Destroyed() || second.Seq <= first.Seq {
		t.Fatalf("unexpected second instance %+v", second)
	}
	if live := r.Live(); len(live) != 1 || live[0] != view.SlotGold {
		t.Fatalf("expected one live gold chart, got %v", live)
	}
	if err := first.Render(&bytes.Buffer{}); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
	want := []string{"goldChart:mount", "goldChart:destroy", "goldChart:mount"}
	if strings.Join(m.events, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected events %v", m.events)
	}
}

func TestMountAllKeepsOnePerSlot(t *testing.T) {
	r := NewRegistry(ChartOptions{}, nil, nil)
	data := []models.DailyRecord{{Date: "2024-01-01", XAU: models.Float(1), XAG: models.Float(1)}}
	specs := []view.ChartSpec{view.BuildGoldChart(data, nil), view.BuildSilverChart(data, nil)}
	for i := 0; i < 3; i++ {
		r.MountAll(specs)
	}
	if live := r.Live(); len(live) != 2 {
		t.Fatalf("expected 2 live charts, got %v", live)
	}
	if _, ok := r.Get(view.SlotRatio); ok {
		t.Fatalf("ratio slot was never mounted")
	}
}

func TestChartRendersLevelsAndSignals(t *testing.T) {
	r := NewRegistry(ChartOptions{Theme: "dark"}, nil, nil)
	inst := r.Mount(goldSpec())

	var buf bytes.Buffer
	if err := inst.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"goldChart", "Resistance 2100.00", "dashed", "#ef4444", "Technical Bullish Zone (Entry Watch)", "2024-01-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered chart missing %q", want)
		}
	}
}

func TestTooltipFormatterSanitizesSignals(t *testing.T) {
	f := tooltipFormatter([]string{"", `Buy "now" \ <b>`})
	if strings.ContainsAny(f, `"\`) {
		t.Fatalf("formatter must not contain double quotes or backslashes: %s", f)
	}
	if !strings.Contains(f, "'Buy  now     b '") {
		t.Fatalf("unexpected signal literal in %s", f)
	}
}

func TestLineDataBreaksOnNil(t *testing.T) {
	d := lineData([]*float64{models.Float(1), nil})
	if d[0].Value != 1.0 || d[1].Value != missing {
		t.Fatalf("unexpected line data %+v", d)
	}
}

func TestRenderPage(t *testing.T) {
	a := &models.AnalysisResult{
		Trend:        "Bullish",
		MomentumText: "Momentum is building.",
		Prediction:   models.Prediction{Outlook: "Bullish", Slope: 1, ForecastPrices: []float64{1800.4, 1850.9}},
		MarketEvents: []models.MarketEvent{{Date: "2024-01-02", Type: "Rally", Description: "Gold up 3%", Significance: "High"}},
	}
	data := &models.DataPayload{Daily: []models.DailyRecord{{Date: "2024-01-02", XAU: models.Float(2000), XAG: models.Float(25)}}}
	p := view.BuildPage(data, a, view.Options{Title: "Metals", Currency: "$"})

	r := NewRegistry(ChartOptions{}, nil, nil)
	mounted := r.MountAll(p.Charts)

	var buf bytes.Buffer
	if err := RenderPage(&buf, NewPageData(p, mounted, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`id="gold-price">$2000.00<`,
		`id="gs-ratio">80.00<`,
		`class="indicator bullish"`,
		`<span class="active-phase">Expansion</span>`,
		`Next target zone: $1851`,
		`class="analysis-block events-section"`,
		`id="goldChart"`,
		`id="silverChart"`,
		`color: #22c55e`,
		`[High]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Index(out, "events-section") > strings.Index(out, "<footer") {
		t.Fatalf("events section must precede the footer")
	}
}

func TestRenderEmptyShell(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, NewPageData(view.Page{Title: "Metals"}, nil, time.Time{})); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="gold-price">--<`) {
		t.Fatalf("expected placeholder prices")
	}
	if strings.Contains(out, "events-section") || strings.Contains(out, "<iframe") {
		t.Fatalf("empty shell must not render events or charts")
	}
	if strings.Count(out, "<span") < 5 {
		t.Fatalf("expected the four phase indicators")
	}
}
