package peatrack

import (
	"encoding/json"
	"errors"
	"testing"
)

func parseChartFixture(t *testing.T, payload string) (Series, error) {
	t.Helper()
	var jobj any
	if err := json.Unmarshal([]byte(payload), &jobj); err != nil {
		t.Fatalf("invalid test fixture: %v", err)
	}
	return parseChart("ESE.PA", jobj)
}

func TestParseChart(t *testing.T) {
	// 2025-07-16 and 2025-07-18 midday UTC; the middle day has a null close
	// (holiday) and must be skipped.
	payload := `{"chart":{"result":[{
		"timestamp":[1752660000,1752746400,1752832800],
		"indicators":{"quote":[{"close":[25.0,null,25.5]}]}
	}],"error":null}}`

	series, err := parseChartFixture(t, payload)
	if err != nil {
		t.Fatalf("parseChart() error = %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("parseChart() = %d ticks, want 2 (null close skipped)", len(series))
	}
	if series[0].Close != 25.0 || series[1].Close != 25.5 {
		t.Errorf("closes = %v, %v, want 25.0, 25.5", series[0].Close, series[1].Close)
	}
	if want := MustParseDate("2025-07-16"); series[0].Date != want {
		t.Errorf("first tick date = %v, want %v", series[0].Date, want)
	}
}

func TestParseChart_ProviderError(t *testing.T) {
	payload := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	_, err := parseChartFixture(t, payload)
	if err == nil {
		t.Fatal("parseChart() accepted a provider error payload")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Error("a provider error is not a malformed response")
	}
}

func TestParseChart_Malformed(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{"empty object", `{}`},
		{"no result", `{"chart":{"result":[],"error":null}}`},
		{"missing closes", `{"chart":{"result":[{"timestamp":[1752660000]}],"error":null}}`},
		{"length mismatch", `{"chart":{"result":[{"timestamp":[1752660000,1752746400],"indicators":{"quote":[{"close":[25.0]}]}}],"error":null}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseChartFixture(t, tc.payload)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("parseChart() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}
