package peatrack

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tradingDays is the annualization base for volatility.
const tradingDays = 252

// Metrics are the performance figures derived from the history log. All
// values are percentages except Drawdowns, which keeps the raw ratio series
// (one entry per history row, always <= 0) for the chart to scale.
type Metrics struct {
	CAGR        Percent
	MaxDrawdown Percent
	Volatility  Percent
	Alpha       Percent
	Drawdowns   []float64
}

// ComputeMetrics derives the performance metrics from the history log and an
// optional benchmark close series. With fewer than two snapshots everything
// is zero and the drawdown series is empty.
func ComputeMetrics(h *History, benchmark Series) Metrics {
	if h.Len() < 2 {
		return Metrics{}
	}

	var m Metrics
	first, last := h.First(), h.Last()
	totalReturn := last.TotalReturnPct / 100

	// CAGR smooths the cumulative return over the whole tracked period into
	// an annual growth rate. At exactly 365 days the exponent is 1 and the
	// annualization is a no-op.
	if days := last.Date.Sub(first.Date); days > 0 {
		m.CAGR = Percent((math.Pow(1+totalReturn, 365/float64(days)) - 1) * 100)
	}

	m.Drawdowns, m.MaxDrawdown = drawdowns(h.Values())
	m.Volatility = volatility(h.Values())
	m.Alpha = alpha(totalReturn, benchmark, first.Date)
	return m
}

// drawdowns computes the decline from the running maximum at every point.
// The value is 0 whenever the series sits at a new high.
func drawdowns(values []float64) ([]float64, Percent) {
	series := make([]float64, len(values))
	var rollMax, worst float64
	for i, v := range values {
		if v > rollMax {
			rollMax = v
		}
		if rollMax > 0 {
			series[i] = v/rollMax - 1
		}
		if series[i] < worst {
			worst = series[i]
		}
	}
	return series, Percent(worst * 100)
}

// volatility is the sample standard deviation of the daily percentage change
// of the portfolio value, annualized by sqrt(252). Two snapshots yield a
// single change whose sample deviation is undefined, so it reads as 0.
func volatility(values []float64) Percent {
	if len(values) < 3 {
		return 0
	}
	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			changes = append(changes, (values[i]-values[i-1])/values[i-1])
		}
	}
	if len(changes) < 2 {
		return 0
	}
	return Percent(stat.StdDev(changes, nil) * math.Sqrt(tradingDays) * 100)
}

// alpha is the portfolio's excess total return over the benchmark on the same
// window. The benchmark series is clipped to start at (or just after) the
// portfolio's first snapshot date; an empty or degenerate series yields 0.
func alpha(portfolioReturn float64, benchmark Series, start Date) Percent {
	clipped := benchmark.Since(start)
	if len(clipped) < 2 || clipped[0].Close == 0 {
		return 0
	}
	benchReturn := (clipped[len(clipped)-1].Close - clipped[0].Close) / clipped[0].Close
	return Percent((portfolioReturn - benchReturn) * 100)
}
