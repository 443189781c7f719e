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

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	date          string
	email         bool
	assist        bool
	skipDashboard bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "fetch quotes, apply the monthly plan, and update the tracker files" }
func (*runCmd) Usage() string {
	return `pea run [-d <date>] [-email] [-assist] [-no-dashboard]

  Runs one tracker batch: fetches the daily quotes, executes the monthly
  contributions when due, appends the day's snapshot to the history file,
  regenerates the dashboard, and optionally mails the report.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the run (defaults to today)")
	f.BoolVar(&c.email, "email", false, "Send the report by email after the run")
	f.BoolVar(&c.assist, "assist", false, "Ask the assistant for a commentary on the report")
	f.BoolVar(&c.skipDashboard, "no-dashboard", false, "Skip regenerating the dashboard file")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on := peatrack.Today()
	if c.date != "" {
		if on, err = peatrack.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	res, err := peatrack.Run(cfg, peatrack.NewYahooQuoter(), on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.assist && peatrack.AssistEnabled() {
		commentary, err := peatrack.Commentary(ctx, res.Review)
		if err != nil {
			log.Printf("warning: no commentary: %v", err)
		} else {
			res.Review.Commentary = commentary
		}
	}

	if !c.skipDashboard {
		if err := writeDashboard(cfg.DashboardFile, res); err != nil {
			log.Printf("warning: dashboard not updated: %v", err)
		}
	}

	printMarkdown(res.Review.Markdown())

	if c.email {
		if err := sendReport(cfg, res, on); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Report sent to %s\n", cfg.Mail.To)
	}
	return subcommands.ExitSuccess
}

// writeDashboard renders the dashboard HTML and replaces the published file.
func writeDashboard(path string, res *peatrack.RunResult) error {
	html, err := peatrack.RenderDashboard(peatrack.DefaultDashboardConfig(),
		res.Ledger, res.History, res.Prices, res.Benchmark, res.Review.Metrics)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}

// sendReport mails the HTML report with the performance chart inlined. The
// chart is rendered on a light palette: mail clients show it on white.
func sendReport(cfg *peatrack.Config, res *peatrack.RunResult, on peatrack.Date) error {
	var cid string
	png, err := peatrack.RenderPerformanceChart(peatrack.LightPalette, res.History, 800, 400)
	if err != nil {
		log.Printf("warning: report sent without chart: %v", err)
		png = nil
	} else {
		cid = peatrack.NewChartCID()
	}

	html, err := res.Review.HTML(cid)
	if err != nil {
		return err
	}
	return cfg.Mail.Send(peatrack.Email{
		Subject:  fmt.Sprintf("Portfolio report — %s", on),
		HTML:     html,
		ChartPNG: png,
		ChartCID: cid,
	})
}
