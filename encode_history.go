package peatrack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
)

var historyHeader = []string{"Date", "Total_Invested", "Total_Value", "Total_Return_Pct"}

// DecodeHistory reads the history log from its CSV form. The ticker price
// columns are whatever follows the four fixed columns in the header, so the
// log survives plan changes. An unparseable file is a hard error.
func DecodeHistory(r io.Reader) (*History, error) {
	cr := csv.NewReader(r)
	// Rows written before a plan change may have fewer price columns.
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid history file: %w", err)
	}
	if len(records) == 0 {
		return &History{}, nil
	}

	header := records[0]
	if len(header) < len(historyHeader) || !equalHeader(header[:len(historyHeader)], historyHeader) {
		return nil, fmt.Errorf("invalid history header %v, want %v...", header, historyHeader)
	}
	tickers := append([]string(nil), header[len(historyHeader):]...)

	h := &History{Tickers: tickers}
	for _, rec := range records[1:] {
		if len(rec) < len(historyHeader) {
			return nil, fmt.Errorf("invalid history row %v", rec)
		}
		day, err := ParseDate(rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid history row date: %w", err)
		}
		s := Snapshot{Date: day, Prices: make(map[string]float64)}
		if s.TotalInvested, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return nil, fmt.Errorf("invalid invested total on %s: %w", day, err)
		}
		if s.TotalValue, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("invalid value total on %s: %w", day, err)
		}
		if s.TotalReturnPct, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("invalid return on %s: %w", day, err)
		}
		for i, ticker := range tickers {
			col := len(historyHeader) + i
			if col >= len(rec) || rec[col] == "" {
				continue // quote was missing that day
			}
			price, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s price on %s: %w", ticker, day, err)
			}
			s.Prices[ticker] = price
		}
		h.Append(s)
	}
	return h, nil
}

// EncodeHistory writes the full log in CSV form. The file is always rewritten
// whole: that is what makes the by-date de-duplication effective on disk.
func EncodeHistory(w io.Writer, h *History) error {
	cw := csv.NewWriter(w)
	header := append(append([]string(nil), historyHeader...), h.Tickers...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range h.Snapshots {
		rec := []string{
			s.Date.String(),
			strconv.FormatFloat(s.TotalInvested, 'f', 2, 64),
			strconv.FormatFloat(s.TotalValue, 'f', 2, 64),
			strconv.FormatFloat(s.TotalReturnPct, 'f', 2, 64),
		}
		for _, ticker := range h.Tickers {
			if price, ok := s.Prices[ticker]; ok {
				rec = append(rec, strconv.FormatFloat(price, 'f', 2, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadHistory reads the history file, returning an empty log with the given
// ticker columns when no file exists yet.
func LoadHistory(path string, tickers []string) (*History, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &History{Tickers: tickers}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open history %q: %w", path, err)
	}
	defer f.Close()

	h, err := DecodeHistory(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode history %q: %w", path, err)
	}
	// New plan tickers gain a column; existing rows keep an empty cell.
	for _, t := range tickers {
		if !contains(h.Tickers, t) {
			h.Tickers = append(h.Tickers, t)
		}
	}
	return h, nil
}

// SaveHistory overwrites the history file with the full log.
func SaveHistory(path string, h *History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create history %q: %w", path, err)
	}
	defer f.Close()
	if err := EncodeHistory(f, h); err != nil {
		return fmt.Errorf("cannot write history %q: %w", path, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
