package peatrack

import (
	"errors"
	"fmt"
)

// Tick is one daily closing price.
type Tick struct {
	Date  Date
	Close float64
}

// Series is a daily close series in date order.
type Series []Tick

// Since returns the sub-series of ticks on or after start.
func (s Series) Since(start Date) Series {
	for i, t := range s {
		if !t.Date.Before(start) {
			return s[i:]
		}
	}
	return nil
}

// Last returns the most recent tick.
func (s Series) Last() (Tick, bool) {
	if len(s) == 0 {
		return Tick{}, false
	}
	return s[len(s)-1], true
}

// Change returns the relative change over the series in percent.
func (s Series) Change() Percent {
	if len(s) < 2 || s[0].Close == 0 {
		return 0
	}
	return Percent((s[len(s)-1].Close - s[0].Close) / s[0].Close * 100)
}

// Lookback selects the window of daily quotes to fetch: either a named range
// or everything since an explicit start date.
type Lookback struct {
	rng  string
	from Date
}

// Named lookback windows, mapped onto the quote provider's range names.
var (
	LastWeek    = Lookback{rng: "5d"}
	LastMonth   = Lookback{rng: "1mo"}
	Last6Months = Lookback{rng: "6mo"}
	LastYear    = Lookback{rng: "1y"}
	Last2Years  = Lookback{rng: "2y"}
)

// From returns the lookback window starting at an explicit date.
func From(d Date) Lookback { return Lookback{from: d} }

func (lb Lookback) String() string {
	if lb.rng != "" {
		return lb.rng
	}
	return "since " + lb.from.String()
}

// Quoter supplies daily closing-price history for a ticker over a window.
type Quoter interface {
	Daily(ticker string, lookback Lookback) (Series, error)
}

// ErrMalformedResponse marks a quote payload that was fetched but could not
// be interpreted.
var ErrMalformedResponse = errors.New("malformed quote response")

// BenchmarkStatus tells why a benchmark series may be unusable. The distinct
// cases matter for reporting: "the index had no data" and "the fetch broke"
// read very differently in a log line even though both degrade alpha to 0.
type BenchmarkStatus int

const (
	BenchmarkOK BenchmarkStatus = iota
	BenchmarkNoData
	BenchmarkFetchError
	BenchmarkMalformed
)

func (s BenchmarkStatus) String() string {
	switch s {
	case BenchmarkOK:
		return "ok"
	case BenchmarkNoData:
		return "no data"
	case BenchmarkFetchError:
		return "fetch error"
	case BenchmarkMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// BenchmarkResult is the explicit outcome of a benchmark fetch.
type BenchmarkResult struct {
	Status BenchmarkStatus
	Series Series
	Err    error
}

// Usable reports whether the series can feed the alpha computation.
func (r BenchmarkResult) Usable() bool { return r.Status == BenchmarkOK }

// FetchBenchmark fetches the benchmark close series for the window starting
// at the portfolio's first snapshot date and classifies the outcome. It never
// returns an error: a missing benchmark only zeroes alpha.
func FetchBenchmark(q Quoter, ticker string, since Date) BenchmarkResult {
	if ticker == "" {
		return BenchmarkResult{Status: BenchmarkNoData}
	}
	series, err := q.Daily(ticker, From(since))
	switch {
	case errors.Is(err, ErrMalformedResponse):
		return BenchmarkResult{Status: BenchmarkMalformed, Err: err}
	case err != nil:
		return BenchmarkResult{Status: BenchmarkFetchError, Err: fmt.Errorf("benchmark %s: %w", ticker, err)}
	case len(series) == 0:
		return BenchmarkResult{Status: BenchmarkNoData}
	}
	return BenchmarkResult{Status: BenchmarkOK, Series: series}
}
