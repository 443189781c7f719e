package peatrack

import (
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Position is the cumulative state held for one ticker: shares owned, cash
// contributed so far, and the month of the last automatic purchase
// (1-12, 0 = never purchased).
type Position struct {
	Quantity          decimal.Decimal
	TotalInvested     decimal.Decimal
	LastPurchaseMonth int
}

// Value returns the market value of the position at the given price.
func (p Position) Value(price float64) float64 {
	v, _ := p.Quantity.Mul(decimal.NewFromFloat(price)).Float64()
	return v
}

// Gain returns the unrealized gain of the position at the given price.
func (p Position) Gain(price float64) float64 {
	invested, _ := p.TotalInvested.Float64()
	return p.Value(price) - invested
}

// ReturnPct returns the position's return in percent, 0 when nothing was invested.
func (p Position) ReturnPct(price float64) Percent {
	invested, _ := p.TotalInvested.Float64()
	if invested <= 0 {
		return 0
	}
	return Percent(p.Gain(price) / invested * 100)
}

// Ledger maps each tracked ticker to its Position. It is mutated only by the
// accumulation engine, and remembers whether it changed since it was loaded
// so callers can skip a pointless rewrite.
type Ledger struct {
	positions map[string]Position
	dirty     bool
}

// NewLedger creates a ledger with a zero position for every given ticker.
func NewLedger(tickers []string) *Ledger {
	l := &Ledger{positions: make(map[string]Position, len(tickers))}
	for _, t := range tickers {
		l.positions[t] = Position{}
	}
	return l
}

// Position returns the position held for a ticker. Unknown tickers read as a
// zero position.
func (l *Ledger) Position(ticker string) Position {
	return l.positions[ticker]
}

// set stores a position and marks the ledger dirty.
func (l *Ledger) set(ticker string, p Position) {
	l.positions[ticker] = p
	l.dirty = true
}

// Dirty reports whether any position changed since the ledger was created or loaded.
func (l *Ledger) Dirty() bool { return l.dirty }

// Positions iterates over positions in ticker order.
func (l *Ledger) Positions() iter.Seq2[string, Position] {
	return func(yield func(string, Position) bool) {
		tickers := slices.Collect(maps.Keys(l.positions))
		slices.Sort(tickers)
		for _, t := range tickers {
			if !yield(t, l.positions[t]) {
				return
			}
		}
	}
}

// Totals sums invested capital and market value over all positions, skipping
// tickers with no quote.
func (l *Ledger) Totals(prices map[string]float64) (invested, value float64) {
	for ticker, pos := range l.Positions() {
		inv, _ := pos.TotalInvested.Float64()
		invested += inv
		if price, ok := prices[ticker]; ok {
			value += pos.Value(price)
		}
	}
	return invested, value
}
