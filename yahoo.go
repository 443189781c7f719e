package peatrack

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// The key includes today's date, so cached quotes expire every day.
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// cachedDaily returns a client whose responses are cached until the end of the day.
func cachedDaily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// The chart endpoint rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; peatrack)")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// YahooQuoter fetches daily quotes from the Yahoo Finance chart API.
//
// The response shape is deeply nested and loosely typed, so the interesting
// leaves are plucked out with jsonpath rather than mirrored into structs.
type YahooQuoter struct {
	client *http.Client
}

// NewYahooQuoter returns a quoter backed by the daily-expiring disk cache, so
// repeated runs within a day do not hammer the API.
func NewYahooQuoter() *YahooQuoter {
	return &YahooQuoter{client: cachedDaily()}
}

// Daily returns the daily close series for a ticker over the lookback window.
func (y *YahooQuoter) Daily(ticker string, lookback Lookback) (Series, error) {
	window := "range=" + lookback.rng
	if lookback.rng == "" {
		window = fmt.Sprintf("period1=%d&period2=%d", lookback.from.Time().Unix(), time.Now().Unix())
	}
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&%s",
		url.PathEscape(ticker), window)

	var jobj any
	if err := jwget(y.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch quotes for %q: %w", ticker, err)
	}
	return parseChart(ticker, jobj)
}

// parseChart extracts the (timestamp, close) series from a chart API payload.
func parseChart(ticker string, jobj any) (Series, error) {
	if desc, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && desc != nil {
		return nil, fmt.Errorf("quote provider error for %q: %v", ticker, desc)
	}

	jts, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("%w for %q: no timestamps: %v", ErrMalformedResponse, ticker, err)
	}
	jcloses, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("%w for %q: no closes: %v", ErrMalformedResponse, ticker, err)
	}

	timestamps, ok1 := jts.([]any)
	closes, ok2 := jcloses.([]any)
	if !ok1 || !ok2 || len(timestamps) != len(closes) {
		return nil, fmt.Errorf("%w for %q: series mismatch", ErrMalformedResponse, ticker)
	}

	var series Series
	for i := range timestamps {
		ts, ok := timestamps[i].(float64)
		if !ok {
			return nil, fmt.Errorf("%w for %q: timestamp is not a number", ErrMalformedResponse, ticker)
		}
		// Days without a close (holidays, suspensions) come back as null.
		closeVal, ok := closes[i].(float64)
		if !ok {
			continue
		}
		// Timestamps are timezone-aware; only the calendar day is kept.
		series = append(series, Tick{
			Date:  DateOf(time.Unix(int64(ts), 0).UTC()),
			Close: closeVal,
		})
	}
	return series, nil
}
