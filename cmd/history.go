package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"peatrack"

	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	tail int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the snapshot history log" }
func (*historyCmd) Usage() string {
	return `pea history [-n <rows>]

  Displays the persisted history log as a table, most recent rows last.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "n", 0, "Only display the last n rows (0 for all)")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	_, history, err := LoadState(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if history.Len() == 0 {
		fmt.Fprintf(os.Stderr, "History %q is empty, run 'pea run' first.\n", cfg.HistoryFile)
		return subcommands.ExitSuccess
	}

	snapshots := history.Snapshots
	if c.tail > 0 && len(snapshots) > c.tail {
		snapshots = snapshots[len(snapshots)-c.tail:]
	}

	printMarkdown(historyMarkdown(history.Tickers, snapshots))
	return subcommands.ExitSuccess
}

func historyMarkdown(tickers []string, snapshots []peatrack.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# History\n\n")
	fmt.Fprintf(&b, "| Date | Invested | Value | Return |")
	for _, t := range tickers {
		fmt.Fprintf(&b, " %s |", t)
	}
	fmt.Fprintf(&b, "\n|:---|---:|---:|---:|")
	b.WriteString(strings.Repeat("---:|", len(tickers)))
	fmt.Fprintln(&b)

	for _, s := range snapshots {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %s |", s.Date, s.TotalInvested, s.TotalValue, peatrack.Percent(s.TotalReturnPct).SignedString())
		for _, t := range tickers {
			if price, ok := s.Prices[t]; ok {
				fmt.Fprintf(&b, " %.2f |", price)
			} else {
				fmt.Fprintf(&b, " - |")
			}
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
