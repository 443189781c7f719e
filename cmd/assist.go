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

// assistCmd is the subcommand for the AI commentary.
type assistCmd struct {
	period string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the assistant for a commentary on the portfolio" }
func (*assistCmd) Usage() string {
	return `pea assist [-p <period>]

  Builds the current report and asks the assistant for a short commentary.
  Requires the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "week", "Quote window for the report (week, month, 6months, year, 2years)")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !peatrack.AssistEnabled() {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY is not set.")
		return subcommands.ExitUsageError
	}
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

	commentary, err := peatrack.Commentary(ctx, review)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(commentary)
	return subcommands.ExitSuccess
}
