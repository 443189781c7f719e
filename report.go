package peatrack

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// QuoteRow is the short-term view of one ticker: latest close and the
// variation over the fetched window.
type QuoteRow struct {
	Ticker string
	Close  float64
	Change Percent
}

// GainRow is the since-inception view of one position.
type GainRow struct {
	Ticker   string
	Invested float64
	Gain     float64
	Return   Percent
}

// Review aggregates everything one tracker run produces, in the shape the
// renderers (markdown, email, dashboard) consume.
type Review struct {
	Date     Date
	Currency string

	Quotes []QuoteRow
	Gains  []GainRow

	TotalInvested float64
	TotalValue    float64
	TotalReturn   Percent

	Metrics   Metrics
	Benchmark string

	Purchases []Purchase
	Warnings  []string

	DashboardURL string
	Commentary   string
}

// NewReview assembles the review from the run's artifacts. The quotes map
// holds the fetched window series per ticker; tickers without a series get a
// warning row instead of a quote row.
func NewReview(cfg *Config, l *Ledger, quotes map[string]Series, h *History, m Metrics) *Review {
	r := &Review{
		Date:         Today(),
		Currency:     cfg.Currency,
		Metrics:      m,
		Benchmark:    cfg.Benchmark,
		DashboardURL: cfg.Pages.URL(),
	}

	prices := LatestPrices(quotes)
	for _, ticker := range cfg.Tickers() {
		series, ok := quotes[ticker]
		if !ok || len(series) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("no quotes for %s", ticker))
			continue
		}
		last, _ := series.Last()
		r.Quotes = append(r.Quotes, QuoteRow{Ticker: ticker, Close: last.Close, Change: series.Change()})

		pos := l.Position(ticker)
		r.Gains = append(r.Gains, GainRow{
			Ticker:   ticker,
			Invested: mustFloat(pos.TotalInvested),
			Gain:     pos.Gain(last.Close),
			Return:   pos.ReturnPct(last.Close),
		})
	}

	r.TotalInvested, r.TotalValue = l.Totals(prices)
	if r.TotalInvested > 0 {
		r.TotalReturn = Percent((r.TotalValue - r.TotalInvested) / r.TotalInvested * 100)
	}
	return r
}

// LatestPrices reduces fetched series to the most recent close per ticker.
func LatestPrices(quotes map[string]Series) map[string]float64 {
	prices := make(map[string]float64, len(quotes))
	for ticker, series := range quotes {
		if last, ok := series.Last(); ok {
			prices[ticker] = last.Close
		}
	}
	return prices
}

// money formats an amount in the review currency for display.
func (r *Review) money(v float64) string {
	return money.NewFromFloat(v, r.Currency).Display()
}

// Markdown renders the review as a markdown report.
func (r *Review) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio report — %s\n\n", r.Date)
	fmt.Fprintf(&b, "Total return: **%s** — Net asset value: **%s** (invested %s)\n\n",
		r.TotalReturn.SignedString(), r.money(r.TotalValue), r.money(r.TotalInvested))

	if len(r.Purchases) > 0 {
		fmt.Fprintf(&b, "## Purchases executed\n\n")
		for _, p := range r.Purchases {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Short-term variation\n\n")
	fmt.Fprintf(&b, "| Asset | Close | Change |\n")
	fmt.Fprintf(&b, "|:---|---:|---:|\n")
	for _, q := range r.Quotes {
		fmt.Fprintf(&b, "| %s | %.2f | %s |\n", q.Ticker, q.Close, q.Change.SignedString())
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "## Performance since first purchase\n\n")
	fmt.Fprintf(&b, "| Asset | Invested | Unrealized gain | Return |\n")
	fmt.Fprintf(&b, "|:---|---:|---:|---:|\n")
	for _, g := range r.Gains {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", g.Ticker, r.money(g.Invested), r.money(g.Gain), g.Return.SignedString())
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "## Key figures\n\n")
	fmt.Fprintf(&b, "| CAGR | Max drawdown | Volatility | Alpha vs %s |\n", r.Benchmark)
	fmt.Fprintf(&b, "|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		r.Metrics.CAGR, r.Metrics.MaxDrawdown, r.Metrics.Volatility, r.Metrics.Alpha.SignedString())

	if r.Commentary != "" {
		fmt.Fprintf(&b, "## Commentary\n\n%s\n\n", r.Commentary)
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "> warning: %s\n", w)
	}
	if r.DashboardURL != "" {
		fmt.Fprintf(&b, "\nFull dashboard: %s\n", r.DashboardURL)
	}
	return b.String()
}

// emailStyle is the inline CSS of the report email, kept close to the
// unadorned table look of the historical reports.
const emailStyle = `body{font-family:Helvetica,Arial,sans-serif;color:#333;line-height:1.6}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:8px;text-align:right}
th:first-child,td:first-child{text-align:left}
th{background-color:#f2f2f2}
h1{border-bottom:1px solid #333;padding-bottom:10px}
blockquote{font-size:12px;color:#a33;border-left:3px solid #a33;margin:4px 0;padding-left:8px}
footer{font-size:11px;color:#666;margin-top:30px;border-top:1px solid #eee}`

// HTML converts the markdown report into a standalone HTML document for the
// email body. When chartCID is non-empty an inline chart image is referenced
// by content id.
func (r *Review) HTML(chartCID string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &body); err != nil {
		return "", fmt.Errorf("cannot render report HTML: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><style>%s</style></head><body>\n", emailStyle)
	b.Write(body.Bytes())
	if chartCID != "" {
		fmt.Fprintf(&b, `<h2>Performance chart</h2><img src="cid:%s" style="width:100%%;max-width:600px">`+"\n", chartCID)
	}
	fmt.Fprintf(&b, "<footer>Automatically generated report. Quotes: Yahoo Finance.</footer></body></html>")
	return b.String(), nil
}

func mustFloat(d interface{ Float64() (float64, bool) }) float64 {
	v, _ := d.Float64()
	return v
}
