package peatrack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

var ledgerHeader = []string{"Ticker", "Quantity", "Total_Invested", "Last_Purchase_Month"}

// DecodeLedger reads a ledger from its CSV form, one row per ticker. A ledger
// file that cannot be parsed is a hard error: the state is the source of
// truth for past purchases and guessing would corrupt it further.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid ledger file: %w", err)
	}
	if len(records) == 0 {
		return NewLedger(nil), nil
	}
	if !equalHeader(records[0], ledgerHeader) {
		return nil, fmt.Errorf("invalid ledger header %v, want %v", records[0], ledgerHeader)
	}

	l := NewLedger(nil)
	for _, rec := range records[1:] {
		if len(rec) != len(ledgerHeader) {
			return nil, fmt.Errorf("invalid ledger row %v: want %d columns", rec, len(ledgerHeader))
		}
		quantity, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %s: %w", rec[0], err)
		}
		invested, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("invalid invested amount for %s: %w", rec[0], err)
		}
		month, err := strconv.Atoi(rec[3])
		if err != nil || month < 0 || month > 12 {
			return nil, fmt.Errorf("invalid last purchase month %q for %s", rec[3], rec[0])
		}
		l.positions[rec[0]] = Position{
			Quantity:          quantity,
			TotalInvested:     invested,
			LastPurchaseMonth: month,
		}
	}
	return l, nil
}

// EncodeLedger writes the ledger in CSV form, rows in ticker order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for ticker, pos := range l.Positions() {
		rec := []string{
			ticker,
			pos.Quantity.String(),
			pos.TotalInvested.String(),
			strconv.Itoa(pos.LastPurchaseMonth),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadLedger reads the ledger file, returning a zero ledger seeded with the
// plan tickers when no file exists yet.
func LoadLedger(path string, tickers []string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(tickers), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", path, err)
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", path, err)
	}
	// Manually seeded files may miss newly planned tickers.
	for _, t := range tickers {
		if _, ok := l.positions[t]; !ok {
			l.positions[t] = Position{}
		}
	}
	return l, nil
}

// SaveLedger overwrites the ledger file with the current state.
func SaveLedger(path string, l *Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create ledger %q: %w", path, err)
	}
	defer f.Close()
	if err := EncodeLedger(f, l); err != nil {
		return fmt.Errorf("cannot write ledger %q: %w", path, err)
	}
	return nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
