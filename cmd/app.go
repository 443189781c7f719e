// Package cmd implements the CLI application to run the tracker.
package cmd

import (
	"flag"
	"fmt"

	"peatrack"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands.
// A main package registers them all and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&runCmd{},
	&reviewCmd{},
	&historyCmd{},
	&dashboardCmd{},
	&assistCmd{},
	&scheduleCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "peatrack.toml", "Path to the tracker configuration file (TOML)")

// LoadConfig loads the app configuration file and the environment.
func LoadConfig() (*peatrack.Config, error) {
	return peatrack.LoadConfig(*configFile)
}

// LoadState loads the persisted ledger and history for the configured plan.
func LoadState(cfg *peatrack.Config) (*peatrack.Ledger, *peatrack.History, error) {
	ledger, err := peatrack.LoadLedger(cfg.LedgerFile, cfg.Tickers())
	if err != nil {
		return nil, nil, fmt.Errorf("loading ledger: %w", err)
	}
	history, err := peatrack.LoadHistory(cfg.HistoryFile, cfg.Tickers())
	if err != nil {
		return nil, nil, fmt.Errorf("loading history: %w", err)
	}
	return ledger, history, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Println(out)
}

// parseLookback maps the -p flag onto a quote window.
func parseLookback(p string) (peatrack.Lookback, error) {
	switch p {
	case "week":
		return peatrack.LastWeek, nil
	case "month":
		return peatrack.LastMonth, nil
	case "6months":
		return peatrack.Last6Months, nil
	case "year":
		return peatrack.LastYear, nil
	case "2years":
		return peatrack.Last2Years, nil
	}
	return peatrack.Lookback{}, fmt.Errorf("unknown period %q (week, month, 6months, year, 2years)", p)
}
