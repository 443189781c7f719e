package peatrack

import (
	"encoding/base64"
	"fmt"
	"log"
	"strings"
)

// DashboardConfig parameterizes the multi-panel dashboard: one renderer, one
// palette, rather than one hand-tuned script per variant.
type DashboardConfig struct {
	Title       string
	Palette     Palette
	PanelWidth  int
	PanelHeight int
	// WideHeight is the height of full-width panels (the drawdown strip).
	WideHeight int
}

// DefaultDashboardConfig is the published one-page report layout.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Title:       "INVESTMENT MEMORANDUM",
		Palette:     DarkPalette,
		PanelWidth:  620,
		PanelHeight: 380,
		WideHeight:  300,
	}
}

// dashboardPanel is one rendered cell of the grid.
type dashboardPanel struct {
	png  []byte
	wide bool
}

// RenderDashboard assembles the dashboard HTML: a KPI header strip followed
// by a grid of chart panels. Panels that cannot be drawn (no benchmark, no
// priced position, too little history) are skipped, so the grid size adapts
// to the available data.
func RenderDashboard(cfg DashboardConfig, l *Ledger, h *History, prices map[string]float64, benchmark BenchmarkResult, m Metrics) (string, error) {
	if h.Len() < 2 {
		return "", fmt.Errorf("cannot render dashboard: need at least 2 history rows, got %d", h.Len())
	}

	var panels []dashboardPanel
	add := func(png []byte, err error, wide bool, name string) {
		if err != nil {
			log.Printf("dashboard: skipping %s panel: %v", name, err)
			return
		}
		panels = append(panels, dashboardPanel{png: png, wide: wide})
	}

	p, w, ht := cfg.Palette, cfg.PanelWidth, cfg.PanelHeight
	png, err := RenderExposurePie(p, l, prices, w, ht)
	add(png, err, false, "exposure")
	png, err = RenderNAVChart(p, h, w, ht)
	add(png, err, false, "nav")
	png, err = RenderGainBars(p, l, prices, w, ht)
	add(png, err, false, "attribution")
	if benchmark.Usable() {
		png, err = RenderAlphaChart(p, h, benchmark.Series, "Benchmark", w, ht)
		add(png, err, false, "alpha")
	} else {
		log.Printf("dashboard: skipping alpha panel: benchmark %s", benchmark.Status)
	}
	png, err = RenderDrawdownChart(p, h, m.Drawdowns, 2*w, cfg.WideHeight)
	add(png, err, true, "drawdown")

	return dashboardHTML(cfg, h.Last(), m, panels), nil
}

// kpi is one header figure.
type kpi struct {
	name  string
	value string
	color string
}

func dashboardHTML(cfg DashboardConfig, last Snapshot, m Metrics, panels []dashboardPanel) string {
	kpis := []kpi{
		{"NET EQUITY", fmt.Sprintf("%.2f€", last.TotalValue), "#00ff41"},
		{"CAGR", m.CAGR.String(), "#00d2d3"},
		{"ALPHA", m.Alpha.SignedString(), "#a29bfe"},
		{"MAX DRAWDOWN", m.MaxDrawdown.String(), "#ff2a2a"},
		{"VOLATILITY", m.Volatility.String(), "#f1c40f"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title>\n", cfg.Title)
	fmt.Fprintf(&b, `<style>
body{background:#000;color:#ecf0f1;font-family:"Courier New",monospace;margin:20px}
h1{color:#ff9f43;letter-spacing:3px;font-size:22px}
h1 small{color:#636e72;font-size:12px;letter-spacing:normal}
.kpis{display:flex;gap:40px;margin:20px 0}
.kpis .name{color:#636e72;font-size:10px}
.kpis .value{font-size:18px;font-weight:bold}
.grid{display:grid;grid-template-columns:repeat(2,1fr);gap:16px}
.panel{background:#111}
.panel.wide{grid-column:span 2}
.panel img{width:100%%;display:block}
</style></head><body>
`)
	fmt.Fprintf(&b, "<h1>%s <small>| ONE-PAGE REPORT — %s</small></h1>\n", cfg.Title, last.Date)

	fmt.Fprintf(&b, "<div class=\"kpis\">\n")
	for _, k := range kpis {
		fmt.Fprintf(&b, "<div><div class=\"name\">%s</div><div class=\"value\" style=\"color:%s\">%s</div></div>\n",
			k.name, k.color, k.value)
	}
	fmt.Fprintf(&b, "</div>\n<div class=\"grid\">\n")

	for _, panel := range panels {
		class := "panel"
		if panel.wide {
			class = "panel wide"
		}
		fmt.Fprintf(&b, "<div class=\"%s\"><img src=\"data:image/png;base64,%s\"></div>\n",
			class, base64.StdEncoding.EncodeToString(panel.png))
	}
	fmt.Fprintf(&b, "</div></body></html>\n")
	return b.String()
}
