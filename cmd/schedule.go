package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	run  runCmd
	spec string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "run the tracker batch on a cron schedule" }
func (*scheduleCmd) Usage() string {
	return `pea schedule [-spec <cron>] [-email] [-assist]

  Keeps running and executes the tracker batch on the given cron schedule.
  The default fires on weekday evenings, after the European close.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "spec", "30 18 * * 1-5", "Cron schedule for the batch")
	f.BoolVar(&c.run.email, "email", false, "Send the report by email after each run")
	f.BoolVar(&c.run.assist, "assist", false, "Ask the assistant for a commentary on each report")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	// Validate the configuration up front, not at 18:30.
	if _, err := LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var running atomic.Bool
	scheduler := cron.New()
	_, err := scheduler.AddFunc(c.spec, func() {
		if !running.CompareAndSwap(false, true) {
			log.Printf("previous run still active, skipping this tick")
			return
		}
		defer running.Store(false)
		if status := c.run.Execute(ctx, f, args...); status != subcommands.ExitSuccess {
			log.Printf("scheduled run failed with status %d", status)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid cron spec %q: %v\n", c.spec, err)
		return subcommands.ExitUsageError
	}

	log.Printf("scheduler started, next runs on %q", c.spec)
	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	return subcommands.ExitSuccess
}
