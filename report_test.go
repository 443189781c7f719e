package peatrack

import (
	"strings"
	"testing"
)

func testReview(t *testing.T) *Review {
	t.Helper()
	cfg := &Config{
		Currency:  "EUR",
		Benchmark: "CW8.PA",
		Plan: []PlanEntry{
			{Ticker: "ESE.PA", Monthly: 250},
			{Ticker: "ETZ.PA", Monthly: 140},
		},
	}
	l := NewLedger(cfg.Tickers())
	prices := map[string]float64{"ESE.PA": 25, "ETZ.PA": 70}
	if _, err := l.Accumulate(cfg.Plan, prices, MustParseDate("2025-07-16")); err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}

	quotes := map[string]Series{
		"ESE.PA": {
			{Date: MustParseDate("2025-07-15"), Close: 25},
			{Date: MustParseDate("2025-07-16"), Close: 27.5},
		},
		// ETZ.PA has no series: the review must degrade to a warning.
	}
	h := &History{}
	h.Append(NewSnapshot(MustParseDate("2025-07-16"), l, LatestPrices(quotes)))

	return NewReview(cfg, l, quotes, h, Metrics{CAGR: 5, MaxDrawdown: -3, Volatility: 12, Alpha: 1.5})
}

func TestReviewMarkdown(t *testing.T) {
	md := testReview(t).Markdown()

	for _, want := range []string{
		"| ESE.PA | 27.50 | +10.00% |", // 25 -> 27.5 over the window
		"## Key figures",
		"Alpha vs CW8.PA",
		"> warning: no quotes for ETZ.PA",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() misses %q:\n%s", want, md)
		}
	}
}

func TestReviewMarkdown_Purchases(t *testing.T) {
	r := testReview(t)
	if strings.Contains(r.Markdown(), "## Purchases executed") {
		t.Error("Markdown() shows a purchase section without purchases")
	}

	r.Purchases = []Purchase{{Ticker: "ESE.PA", Date: MustParseDate("2025-07-16")}}
	if !strings.Contains(r.Markdown(), "## Purchases executed") {
		t.Error("Markdown() misses the purchase section")
	}
}

func TestReviewHTML(t *testing.T) {
	r := testReview(t)

	html, err := r.HTML("chart-1@peatrack")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	// The markdown pipe table must come out as a real HTML table, and the
	// chart must be referenced by content id.
	for _, want := range []string{"<table>", "ESE.PA", `src="cid:chart-1@peatrack"`} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() misses %q", want)
		}
	}

	// Without a chart cid there is no dangling image tag.
	html, err = r.HTML("")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if strings.Contains(html, "cid:") {
		t.Error("HTML() references a chart that was not attached")
	}
}

func TestNewReview_Totals(t *testing.T) {
	r := testReview(t)
	// 250 + 140 invested; ESE.PA is worth 275 at its last close, ETZ.PA has
	// no quote and is valued at 0.
	if r.TotalInvested != 390 {
		t.Errorf("TotalInvested = %v, want 390", r.TotalInvested)
	}
	if r.TotalValue != 275 {
		t.Errorf("TotalValue = %v, want 275", r.TotalValue)
	}
}
