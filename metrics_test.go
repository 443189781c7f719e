package peatrack

import (
	"math"
	"testing"
)

// testHistory builds a history log from (date, value) pairs, with a constant
// invested capital of 100.
func testHistory(t *testing.T, points ...any) *History {
	t.Helper()
	h := &History{}
	for i := 0; i < len(points); i += 2 {
		value := points[i+1].(float64)
		h.Append(Snapshot{
			Date:           MustParseDate(points[i].(string)),
			TotalInvested:  100,
			TotalValue:     value,
			TotalReturnPct: value - 100,
		})
	}
	return h
}

func TestComputeMetrics_TooShort(t *testing.T) {
	h := testHistory(t, "2025-07-01", 100.0)
	m := ComputeMetrics(h, nil)
	if m.CAGR != 0 || m.MaxDrawdown != 0 || m.Volatility != 0 || m.Alpha != 0 {
		t.Errorf("ComputeMetrics() on a single row = %+v, want all zero", m)
	}
}

func TestComputeMetrics_CAGROverOneYear(t *testing.T) {
	// Over exactly 365 days the annualization exponent is 1, so CAGR equals
	// the total return.
	h := testHistory(t, "2025-01-01", 100.0, "2026-01-01", 110.0)
	m := ComputeMetrics(h, nil)
	if !m.CAGR.Equal(Percent(10)) {
		t.Errorf("CAGR over one year = %s, want 10.00%%", m.CAGR)
	}
}

func TestComputeMetrics_CAGRAnnualizes(t *testing.T) {
	// +10% in half a year compounds to (1.1^2 - 1) yearly.
	h := testHistory(t, "2025-01-01", 100.0, "2025-07-02", 110.0)
	m := ComputeMetrics(h, nil)
	want := (math.Pow(1.10, 365.0/182.0) - 1) * 100
	if math.Abs(float64(m.CAGR)-want) > 0.01 {
		t.Errorf("CAGR over 182 days = %s, want %.2f%%", m.CAGR, want)
	}
}

func TestDrawdowns(t *testing.T) {
	series, worst := drawdowns([]float64{100, 120, 90, 130})

	want := []float64{0, 0, -0.25, 0}
	for i := range want {
		if math.Abs(series[i]-want[i]) > 1e-9 {
			t.Errorf("drawdowns()[%d] = %v, want %v", i, series[i], want[i])
		}
	}
	if !worst.Equal(Percent(-25)) {
		t.Errorf("max drawdown = %s, want -25.00%%", worst)
	}
}

func TestDrawdowns_NeverPositive(t *testing.T) {
	series, worst := drawdowns([]float64{50, 100, 80, 120, 60})
	for i, v := range series {
		if v > 0 {
			t.Errorf("drawdowns()[%d] = %v, want <= 0", i, v)
		}
	}
	if worst > 0 {
		t.Errorf("max drawdown = %s, want <= 0", worst)
	}
}

func TestVolatility(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   Percent
	}{
		{"flat series has no volatility", []float64{100, 100, 100, 100}, 0},
		{"two rows yield a single change, undefined deviation", []float64{100, 120}, 0},
		{"constant growth rate has no volatility", []float64{100, 110, 121, 133.1}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := volatility(tc.values); !got.Equal(tc.want) {
				t.Errorf("volatility(%v) = %s, want %s", tc.values, got, tc.want)
			}
		})
	}
}

func TestVolatility_Annualized(t *testing.T) {
	// Alternating +10%/-10% daily changes: the sample deviation of the change
	// series {0.1, -0.1, 0.1, -0.1} is sqrt(4/3 * 0.01), annualized by sqrt(252).
	got := volatility([]float64{100, 110, 99, 108.9, 98.01})
	want := Percent(math.Sqrt(4.0/3.0*0.01) * math.Sqrt(252) * 100)
	if !got.Equal(want) {
		t.Errorf("volatility = %s, want %s", got, want)
	}
}

func TestAlpha(t *testing.T) {
	start := MustParseDate("2025-01-01")
	benchmark := Series{
		{Date: MustParseDate("2024-12-01"), Close: 90}, // before start, must be clipped
		{Date: MustParseDate("2025-01-01"), Close: 100},
		{Date: MustParseDate("2025-06-01"), Close: 110},
	}

	// Portfolio +20%, benchmark +10% since start.
	if got := alpha(0.20, benchmark, start); !got.Equal(Percent(10)) {
		t.Errorf("alpha = %s, want 10.00%%", got)
	}
	// No benchmark at all degrades to zero, not to an error.
	if got := alpha(0.20, nil, start); got != 0 {
		t.Errorf("alpha without benchmark = %s, want 0", got)
	}
	// A benchmark entirely before the window is clipped away.
	early := Series{{Date: MustParseDate("2024-01-01"), Close: 80}}
	if got := alpha(0.20, early, start); got != 0 {
		t.Errorf("alpha with out-of-window benchmark = %s, want 0", got)
	}
}

func TestComputeMetrics_DrawdownSeriesMatchesHistory(t *testing.T) {
	h := testHistory(t, "2025-01-01", 100.0, "2025-01-02", 110.0, "2025-01-03", 104.0)
	m := ComputeMetrics(h, nil)
	if len(m.Drawdowns) != h.Len() {
		t.Errorf("len(Drawdowns) = %d, want %d", len(m.Drawdowns), h.Len())
	}
}
