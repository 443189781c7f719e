package peatrack

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PurchaseDay is the day of the month on or after which the monthly
// contribution is executed.
const PurchaseDay = 16

// Purchase records one executed plan contribution.
type Purchase struct {
	Ticker   string
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Date     Date
}

func (p Purchase) String() string {
	return fmt.Sprintf("%s: bought %s for %s on %s", p.Ticker, p.Quantity.StringFixed(4), p.Amount, p.Date)
}

// Accumulate applies the monthly contribution rule to the ledger: for every
// plan entry with a non-zero amount, if today is on or after PurchaseDay and
// no purchase was made this month yet, buy amount/price shares.
//
// The operation is idempotent per calendar month: once a ticker's purchase is
// recorded for a month, further calls in the same month do nothing.
//
// A missing or non-positive quote skips that ticker only; the skips are
// reported in the returned joined error so the run can continue with the
// remaining tickers.
func (l *Ledger) Accumulate(plan []PlanEntry, prices map[string]float64, on Date) ([]Purchase, error) {
	if on.Day() < PurchaseDay {
		return nil, nil
	}

	var purchases []Purchase
	var warnings error
	month := int(on.Month())

	for _, entry := range plan {
		if entry.Monthly <= 0 {
			continue
		}
		pos := l.Position(entry.Ticker)
		if pos.LastPurchaseMonth == month {
			continue // already bought this month
		}

		price, ok := prices[entry.Ticker]
		if !ok || price <= 0 {
			warnings = errors.Join(warnings, fmt.Errorf("no quote for %s, skipping %v contribution", entry.Ticker, entry.Monthly))
			continue
		}

		amount := decimal.NewFromFloat(entry.Monthly)
		quantity := amount.Div(decimal.NewFromFloat(price))

		pos.Quantity = pos.Quantity.Add(quantity)
		pos.TotalInvested = pos.TotalInvested.Add(amount)
		pos.LastPurchaseMonth = month
		l.set(entry.Ticker, pos)

		purchases = append(purchases, Purchase{
			Ticker:   entry.Ticker,
			Quantity: quantity,
			Amount:   amount,
			Date:     on,
		})
	}
	return purchases, warnings
}
