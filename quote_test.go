package peatrack

import (
	"errors"
	"fmt"
	"testing"
)

// fakeQuoter serves canned series per ticker, and canned errors.
type fakeQuoter struct {
	series map[string]Series
	errs   map[string]error
}

func (f *fakeQuoter) Daily(ticker string, _ Lookback) (Series, error) {
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	return f.series[ticker], nil
}

func TestSeries_Since(t *testing.T) {
	s := Series{
		{Date: MustParseDate("2025-07-14"), Close: 24},
		{Date: MustParseDate("2025-07-15"), Close: 25},
		{Date: MustParseDate("2025-07-16"), Close: 26},
	}
	if got := s.Since(MustParseDate("2025-07-15")); len(got) != 2 || got[0].Close != 25 {
		t.Errorf("Since(2025-07-15) = %v, want the last two ticks", got)
	}
	if got := s.Since(MustParseDate("2025-08-01")); got != nil {
		t.Errorf("Since() past the end = %v, want nil", got)
	}
	if got := s.Since(MustParseDate("2025-01-01")); len(got) != 3 {
		t.Errorf("Since() before the start = %d ticks, want all 3", len(got))
	}
}

func TestSeries_Change(t *testing.T) {
	s := Series{
		{Date: MustParseDate("2025-07-15"), Close: 25},
		{Date: MustParseDate("2025-07-16"), Close: 27.5},
	}
	if got := s.Change(); !got.Equal(Percent(10)) {
		t.Errorf("Change() = %s, want 10.00%%", got)
	}
	if got := (Series{}).Change(); got != 0 {
		t.Errorf("Change() on empty series = %s, want 0", got)
	}
}

func TestFetchBenchmark(t *testing.T) {
	since := MustParseDate("2025-07-01")
	series := Series{{Date: MustParseDate("2025-07-02"), Close: 500}}

	testCases := []struct {
		name   string
		quoter Quoter
		ticker string
		want   BenchmarkStatus
		usable bool
	}{
		{
			name:   "ok",
			quoter: &fakeQuoter{series: map[string]Series{"CW8.PA": series}},
			ticker: "CW8.PA",
			want:   BenchmarkOK,
			usable: true,
		},
		{
			name:   "unset ticker",
			quoter: &fakeQuoter{},
			ticker: "",
			want:   BenchmarkNoData,
		},
		{
			name:   "empty series",
			quoter: &fakeQuoter{},
			ticker: "CW8.PA",
			want:   BenchmarkNoData,
		},
		{
			name:   "fetch failure",
			quoter: &fakeQuoter{errs: map[string]error{"CW8.PA": errors.New("timeout")}},
			ticker: "CW8.PA",
			want:   BenchmarkFetchError,
		},
		{
			name:   "malformed payload",
			quoter: &fakeQuoter{errs: map[string]error{"CW8.PA": fmt.Errorf("%w: no closes", ErrMalformedResponse)}},
			ticker: "CW8.PA",
			want:   BenchmarkMalformed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FetchBenchmark(tc.quoter, tc.ticker, since)
			if got.Status != tc.want {
				t.Errorf("FetchBenchmark().Status = %s, want %s", got.Status, tc.want)
			}
			if got.Usable() != tc.usable {
				t.Errorf("FetchBenchmark().Usable() = %v, want %v", got.Usable(), tc.usable)
			}
		})
	}
}
