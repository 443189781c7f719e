package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"peatrack"

	"github.com/google/subcommands"
)

// dashboardCmd holds the flags for the 'dashboard' subcommand.
type dashboardCmd struct {
	output string
	light  bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "regenerate the dashboard HTML file" }
func (*dashboardCmd) Usage() string {
	return `pea dashboard [-o <file>] [-light]

  Regenerates the one-page dashboard from the persisted state and fresh
  quotes, without executing purchases or appending to the history.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to the configured dashboard file)")
	f.BoolVar(&c.light, "light", false, "Render on the light palette")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, history, err := LoadState(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if history.Len() < 2 {
		fmt.Fprintf(os.Stderr, "Error: not enough history to draw a dashboard (%d rows), run 'pea run' first.\n", history.Len())
		return subcommands.ExitFailure
	}

	q := peatrack.NewYahooQuoter()
	quotes := make(map[string]peatrack.Series)
	for _, ticker := range cfg.Tickers() {
		series, err := q.Daily(ticker, peatrack.LastWeek)
		if err != nil {
			log.Printf("warning: no quotes for %s: %v", ticker, err)
			continue
		}
		quotes[ticker] = series
	}
	prices := peatrack.LatestPrices(quotes)
	benchmark := peatrack.FetchBenchmark(q, cfg.Benchmark, history.First().Date)
	metrics := peatrack.ComputeMetrics(history, benchmark.Series)

	dcfg := peatrack.DefaultDashboardConfig()
	if c.light {
		dcfg.Palette = peatrack.LightPalette
	}
	html, err := peatrack.RenderDashboard(dcfg, ledger, history, prices, benchmark, metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = cfg.DashboardFile
	}
	if err := os.WriteFile(output, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dashboard %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Dashboard written to %s\n", output)
	return subcommands.ExitSuccess
}
