package peatrack

import (
	"errors"
	"fmt"
	"log"
)

// RunResult carries everything a tracker run produced, in the shapes the
// presentation layer consumes: the review for reports, the ledger, history
// and prices for the dashboard.
type RunResult struct {
	Review    *Review
	Ledger    *Ledger
	History   *History
	Prices    map[string]float64
	Benchmark BenchmarkResult
}

// Run executes one tracker batch for the given date: fetch quotes, apply the
// monthly contribution rule, snapshot the portfolio, persist, and derive the
// performance metrics.
//
// Persistence happens before any reporting so that a later mail or rendering
// failure never loses the day's data. Quote failures degrade per ticker; the
// run only aborts when no ticker could be quoted at all, or when a persisted
// file is unreadable.
func Run(cfg *Config, q Quoter, on Date) (*RunResult, error) {
	ledger, err := LoadLedger(cfg.LedgerFile, cfg.Tickers())
	if err != nil {
		return nil, err
	}
	history, err := LoadHistory(cfg.HistoryFile, cfg.Tickers())
	if err != nil {
		return nil, err
	}

	// One sequential call per ticker; a failing ticker is skipped, not fatal.
	quotes := make(map[string]Series)
	var quoteErrs error
	for _, ticker := range cfg.Tickers() {
		series, err := q.Daily(ticker, LastWeek)
		if err != nil || len(series) == 0 {
			if err == nil {
				err = fmt.Errorf("empty series")
			}
			quoteErrs = errors.Join(quoteErrs, fmt.Errorf("%s: %w", ticker, err))
			log.Printf("warning: no quotes for %s: %v", ticker, err)
			continue
		}
		quotes[ticker] = series
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no ticker could be quoted, aborting run: %w", quoteErrs)
	}
	prices := LatestPrices(quotes)

	purchases, warns := ledger.Accumulate(cfg.Plan, prices, on)
	if warns != nil {
		log.Printf("warning: %v", warns)
	}
	for _, p := range purchases {
		log.Printf("%v", p)
	}

	history.Append(NewSnapshot(on, ledger, prices))

	// Persist before anything user-facing can fail: the mail relay must
	// never be able to lose a day's update.
	if ledger.Dirty() {
		if err := SaveLedger(cfg.LedgerFile, ledger); err != nil {
			return nil, err
		}
	}
	if err := SaveHistory(cfg.HistoryFile, history); err != nil {
		return nil, err
	}

	benchmark := FetchBenchmark(q, cfg.Benchmark, history.First().Date)
	if !benchmark.Usable() {
		log.Printf("warning: benchmark %s unusable (%s), alpha defaults to 0: %v",
			cfg.Benchmark, benchmark.Status, benchmark.Err)
	}
	metrics := ComputeMetrics(history, benchmark.Series)

	review := NewReview(cfg, ledger, quotes, history, metrics)
	review.Date = on
	review.Purchases = purchases
	if warns != nil {
		review.Warnings = append(review.Warnings, warns.Error())
	}

	return &RunResult{
		Review:    review,
		Ledger:    ledger,
		History:   history,
		Prices:    prices,
		Benchmark: benchmark,
	}, nil
}
