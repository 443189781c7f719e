package peatrack

// Snapshot is one row of the history log: the aggregate portfolio state on a
// given date, plus the closing price of every tracked ticker that day.
type Snapshot struct {
	Date           Date
	TotalInvested  float64
	TotalValue     float64
	TotalReturnPct float64
	// Prices holds the day's closing price per ticker. Tickers whose quote
	// failed that day are absent.
	Prices map[string]float64
}

// NewSnapshot builds the snapshot for a day from the ledger and quotes.
func NewSnapshot(on Date, l *Ledger, prices map[string]float64) Snapshot {
	invested, value := l.Totals(prices)
	var ret float64
	if invested > 0 {
		ret = (value - invested) / invested * 100
	}
	return Snapshot{
		Date:           on,
		TotalInvested:  invested,
		TotalValue:     value,
		TotalReturnPct: ret,
		Prices:         prices,
	}
}

// History is the append-only log of daily snapshots, ordered by date.
type History struct {
	// Tickers fixes the price column order in the persisted file.
	Tickers   []string
	Snapshots []Snapshot
}

// Len returns the number of snapshots.
func (h *History) Len() int { return len(h.Snapshots) }

// First returns the oldest snapshot. It panics on an empty history.
func (h *History) First() Snapshot { return h.Snapshots[0] }

// Last returns the most recent snapshot. It panics on an empty history.
func (h *History) Last() Snapshot { return h.Snapshots[len(h.Snapshots)-1] }

// Append adds a snapshot to the log, de-duplicating by date: when a snapshot
// for the same date already exists, the new one replaces it (the later write
// wins, so a re-run within the day updates the row instead of duplicating it).
func (h *History) Append(s Snapshot) {
	for i, existing := range h.Snapshots {
		if existing.Date == s.Date {
			h.Snapshots[i] = s
			return
		}
	}
	h.Snapshots = append(h.Snapshots, s)
}

// Values returns the TotalValue series in log order.
func (h *History) Values() []float64 {
	values := make([]float64, len(h.Snapshots))
	for i, s := range h.Snapshots {
		values[i] = s.TotalValue
	}
	return values
}

// Dates returns the snapshot dates in log order.
func (h *History) Dates() []Date {
	dates := make([]Date, len(h.Snapshots))
	for i, s := range h.Snapshots {
		dates[i] = s.Date
	}
	return dates
}
