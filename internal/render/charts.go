package render

import (
	"fmt"
	"strings"

	"MetalPulse/internal/view"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartOptions holds display settings shared by every chart.
type ChartOptions struct {
	Theme      string
	AssetsHost string
	Height     string
}

// missing is the echarts marker for a gap in a line.
const missing = "-"

// NewLineChart turns a chart spec into a go-echarts line chart.
func NewLineChart(spec view.ChartSpec, o ChartOptions) *charts.Line {
	if o.Height == "" {
		o.Height = "420px"
	}
	init := opts.Initialization{
		PageTitle: spec.Title,
		ChartID:   spec.Slot,
		Theme:     o.Theme,
		Width:     "100%",
		Height:    o.Height,
	}
	if o.AssetsHost != "" {
		init.AssetsHost = o.AssetsHost
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Left: "center"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "8%"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        true,
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "line"},
			Formatter:   opts.FuncOpts(tooltipFormatter(spec.Signals)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true, SplitLine: &opts.SplitLine{Show: true}}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}, Start: 0, End: 100}),
	)

	line.SetXAxis(spec.Labels)
	for _, s := range spec.Series {
		line.AddSeries(s.Name, lineData(s.Values),
			charts.WithLineChartOpts(opts.LineChart{Smooth: s.Smooth, Symbol: "none"}),
			charts.WithLineStyleOpts(lineStyle(s)),
		)
	}
	return line
}

func lineData(values []*float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = opts.LineData{Value: missing}
			continue
		}
		out[i] = opts.LineData{Value: *v}
	}
	return out
}

func lineStyle(s view.SeriesSpec) opts.LineStyle {
	ls := opts.LineStyle{Color: s.Color, Width: s.Width}
	switch s.Kind {
	case view.KindSupport, view.KindResistance:
		ls.Type = s.Dash
		ls.Opacity = 0.8
	}
	return ls
}

// tooltipFormatter lists every series at the hovered index and appends the
// date's trading signal when there is one. The function body goes through
// the options JSON encoder, so it must not contain double quotes or
// backslashes.
func tooltipFormatter(signals []string) string {
	quoted := make([]string, len(signals))
	for i, s := range signals {
		quoted[i] = "'" + jsSafe(s) + "'"
	}
	return fmt.Sprintf(`function (params) {
	var signals = [%s];
	if (!params.length) { return ''; }
	var out = params[0].axisValue;
	params.forEach(function (p) {
		if (p.value === '%s' || p.value === null || p.value === undefined) { return; }
		out += '<br/>' + p.marker + p.seriesName + ': ' + Number(p.value).toFixed(2);
	});
	var sig = signals[params[0].dataIndex];
	if (sig) { out += '<br/><b>Signal: ' + sig + '</b>'; }
	return out;
}`, strings.Join(quoted, ","), missing)
}

// jsSafe keeps characters that can sit inside a single-quoted JS string
// without escaping.
func jsSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '"' || r == '\\' || r == '<' || r == '>' || r == '`':
			return ' '
		case r < 0x20:
			return -1
		}
		return r
	}, s)
}
