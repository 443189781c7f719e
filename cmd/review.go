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

// reviewCmd holds the flags for the 'review' subcommand.
type reviewCmd struct {
	period string
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "display the portfolio report without touching the files" }
func (*reviewCmd) Usage() string {
	return `pea review [-p <period>]

  Fetches fresh quotes and displays the portfolio report for the persisted
  state. Nothing is written: no purchase is executed, no snapshot is appended.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "week", "Quote window for the short-term variation (week, month, 6months, year, 2years)")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	lookback, err := parseLookback(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, history, err := LoadState(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	q := peatrack.NewYahooQuoter()
	quotes := make(map[string]peatrack.Series)
	for _, ticker := range cfg.Tickers() {
		series, err := q.Daily(ticker, lookback)
		if err != nil {
			log.Printf("warning: no quotes for %s: %v", ticker, err)
			continue
		}
		quotes[ticker] = series
	}

	var metrics peatrack.Metrics
	if history.Len() > 0 {
		benchmark := peatrack.FetchBenchmark(q, cfg.Benchmark, history.First().Date)
		metrics = peatrack.ComputeMetrics(history, benchmark.Series)
	}

	review := peatrack.NewReview(cfg, ledger, quotes, history, metrics)
	printMarkdown(review.Markdown())
	return subcommands.ExitSuccess
}
