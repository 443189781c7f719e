package peatrack

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette is the chart color scheme. The default is the dark "terminal"
// scheme of the published dashboard; renderers only ever read from here so a
// different scheme is one struct literal away.
type Palette struct {
	Background drawing.Color
	Paper      drawing.Color
	Grid       drawing.Color
	Text       drawing.Color
	Green      drawing.Color
	Red        drawing.Color
	Orange     drawing.Color
	Purple     drawing.Color
	Grey       drawing.Color
}

// DarkPalette is the institutional dark scheme used by the dashboard.
var DarkPalette = Palette{
	Background: drawing.ColorFromHex("000000"),
	Paper:      drawing.ColorFromHex("111111"),
	Grid:       drawing.ColorFromHex("2d3436"),
	Text:       drawing.ColorFromHex("ecf0f1"),
	Green:      drawing.ColorFromHex("00ff41"),
	Red:        drawing.ColorFromHex("ff2a2a"),
	Orange:     drawing.ColorFromHex("ff9f43"),
	Purple:     drawing.ColorFromHex("a29bfe"),
	Grey:       drawing.ColorFromHex("636e72"),
}

// LightPalette renders the same panels on a white background, for embedding
// in the email.
var LightPalette = Palette{
	Background: drawing.ColorWhite,
	Paper:      drawing.ColorWhite,
	Grid:       drawing.ColorFromHex("dddddd"),
	Text:       drawing.ColorFromHex("333333"),
	Green:      drawing.ColorFromHex("27ae60"),
	Red:        drawing.ColorFromHex("c0392b"),
	Orange:     drawing.ColorFromHex("e67e22"),
	Purple:     drawing.ColorFromHex("8e44ad"),
	Grey:       drawing.ColorFromHex("7f8c8d"),
}

// pieColors shades the exposure pie, one per slice, cycled.
var pieColors = []string{"2c3e50", "34495e", "576574", "7f8c8d", "95a5a6"}

func (p Palette) base(width, height int) chart.Chart {
	return chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: p.Background, FontColor: p.Text, Padding: chart.Box{Top: 30, Left: 10, Right: 20, Bottom: 10}},
		Canvas:     chart.Style{FillColor: p.Paper},
		XAxis: chart.XAxis{
			Style:          chart.Style{FontColor: p.Text, StrokeColor: p.Grid},
			GridMajorStyle: chart.Style{StrokeColor: p.Grid, StrokeWidth: 1},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: p.Text, StrokeColor: p.Grid},
			GridMajorStyle: chart.Style{StrokeColor: p.Grid, StrokeWidth: 1},
		},
	}
}

func render(graph chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func dateAxis(dates []Date) []time.Time {
	xs := make([]time.Time, len(dates))
	for i, d := range dates {
		xs[i] = d.Time()
	}
	return xs
}

// RenderNAVChart draws the net-asset-value history: invested capital as a
// dotted grey line, market value as a filled green series above it.
func RenderNAVChart(p Palette, h *History, width, height int) ([]byte, error) {
	if h.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 history rows, got %d", h.Len())
	}
	xs := dateAxis(h.Dates())
	invested := make([]float64, h.Len())
	values := make([]float64, h.Len())
	for i, s := range h.Snapshots {
		invested[i] = s.TotalInvested
		values[i] = s.TotalValue
	}

	graph := p.base(width, height)
	graph.Title = "NET ASSET VALUE (NAV) HISTORY"
	graph.TitleStyle = chart.Style{FontColor: p.Orange}
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name:    "Invested Capital",
			Style:   chart.Style{StrokeColor: p.Grey, StrokeWidth: 1, StrokeDashArray: []float64{5.0, 3.0}},
			XValues: xs,
			YValues: invested,
		},
		chart.TimeSeries{
			Name:    "Net Asset Value",
			Style:   chart.Style{StrokeColor: p.Green, StrokeWidth: 1.5, FillColor: p.Green.WithAlpha(60)},
			XValues: xs,
			YValues: values,
		},
	}
	return render(graph)
}

// RenderPerformanceChart draws the total return percentage over time. This is
// the single chart embedded in the email report.
func RenderPerformanceChart(p Palette, h *History, width, height int) ([]byte, error) {
	if h.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 history rows, got %d", h.Len())
	}
	returns := make([]float64, h.Len())
	for i, s := range h.Snapshots {
		returns[i] = s.TotalReturnPct
	}

	graph := p.base(width, height)
	graph.Title = "TOTAL RETURN (%)"
	graph.TitleStyle = chart.Style{FontColor: p.Orange}
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name:    "Total Return",
			Style:   chart.Style{StrokeColor: p.Green, StrokeWidth: 1.5},
			XValues: dateAxis(h.Dates()),
			YValues: returns,
		},
	}
	return render(graph)
}

// RenderDrawdownChart draws the drawdown-from-peak series as a filled red
// area, scaled to percent.
func RenderDrawdownChart(p Palette, h *History, dd []float64, width, height int) ([]byte, error) {
	if h.Len() < 2 || len(dd) != h.Len() {
		return nil, fmt.Errorf("drawdown series does not match history")
	}
	scaled := make([]float64, len(dd))
	for i, v := range dd {
		scaled[i] = v * 100
	}

	graph := p.base(width, height)
	graph.Title = "RISK PROFILE: HISTORICAL DRAWDOWN"
	graph.TitleStyle = chart.Style{FontColor: p.Orange}
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name:    "Drawdown",
			Style:   chart.Style{StrokeColor: p.Red, StrokeWidth: 1, FillColor: p.Red.WithAlpha(60)},
			XValues: dateAxis(h.Dates()),
			YValues: scaled,
		},
	}
	return render(graph)
}

// RenderAlphaChart draws the portfolio return against the benchmark return,
// both normalized to 0% at the start of the tracked window.
func RenderAlphaChart(p Palette, h *History, benchmark Series, benchmarkName string, width, height int) ([]byte, error) {
	if h.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 history rows, got %d", h.Len())
	}
	clipped := benchmark.Since(h.First().Date)
	if len(clipped) < 2 || clipped[0].Close == 0 {
		return nil, fmt.Errorf("benchmark series too short")
	}

	returns := make([]float64, h.Len())
	for i, s := range h.Snapshots {
		returns[i] = s.TotalReturnPct
	}
	benchXs := make([]time.Time, len(clipped))
	benchYs := make([]float64, len(clipped))
	for i, t := range clipped {
		benchXs[i] = t.Date.Time()
		benchYs[i] = (t.Close/clipped[0].Close - 1) * 100
	}

	graph := p.base(width, height)
	graph.Title = "ALPHA GENERATION vs BENCHMARK"
	graph.TitleStyle = chart.Style{FontColor: p.Orange}
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name:    "Portfolio",
			Style:   chart.Style{StrokeColor: p.Green, StrokeWidth: 2},
			XValues: dateAxis(h.Dates()),
			YValues: returns,
		},
		chart.TimeSeries{
			Name:    benchmarkName,
			Style:   chart.Style{StrokeColor: p.Purple, StrokeWidth: 1, StrokeDashArray: []float64{5.0, 3.0}},
			XValues: benchXs,
			YValues: benchYs,
		},
	}
	return render(graph)
}

// RenderExposurePie draws the current portfolio weights.
func RenderExposurePie(p Palette, l *Ledger, prices map[string]float64, width, height int) ([]byte, error) {
	var values []chart.Value
	i := 0
	for ticker, pos := range l.Positions() {
		price, ok := prices[ticker]
		if !ok || pos.Quantity.IsZero() {
			continue
		}
		values = append(values, chart.Value{
			Label: ticker,
			Value: pos.Value(price),
			Style: chart.Style{FillColor: drawing.ColorFromHex(pieColors[i%len(pieColors)]), FontColor: p.Text},
		})
		i++
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no positions to draw")
	}

	pie := chart.PieChart{
		Title:      "PORTFOLIO EXPOSURE (WEIGHTS)",
		TitleStyle: chart.Style{FontColor: p.Orange},
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: p.Background, FontColor: p.Text},
		Canvas:     chart.Style{FillColor: p.Paper},
		Values:     values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("pie render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderGainBars draws the unrealized gain per position, green above zero and
// red below.
func RenderGainBars(p Palette, l *Ledger, prices map[string]float64, width, height int) ([]byte, error) {
	var bars []chart.Value
	for ticker, pos := range l.Positions() {
		price, ok := prices[ticker]
		if !ok {
			continue
		}
		gain := pos.Gain(price)
		color := p.Green
		if gain < 0 {
			color = p.Red
		}
		bars = append(bars, chart.Value{Label: ticker, Value: gain, Style: chart.Style{FillColor: color, FontColor: p.Text}})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no positions to draw")
	}

	graph := chart.BarChart{
		Title:      "P&L ATTRIBUTION",
		TitleStyle: chart.Style{FontColor: p.Orange},
		Width:      width,
		Height:     height,
		BarWidth:   40,
		Background: chart.Style{FillColor: p.Background, FontColor: p.Text, Padding: chart.Box{Top: 30, Left: 10, Right: 10, Bottom: 10}},
		Canvas:     chart.Style{FillColor: p.Paper},
		XAxis:      chart.Style{FontColor: p.Text},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: p.Text, StrokeColor: p.Grid},
			GridMajorStyle: chart.Style{StrokeColor: p.Grid, StrokeWidth: 1},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("bar render failed: %w", err)
	}
	return buf.Bytes(), nil
}
