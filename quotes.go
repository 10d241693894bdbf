package folio

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
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// contains the http implementation of the QuoteSource boundary.

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache uses a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
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

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
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

// newDailyClient returns a client whose responses are cached on disk with a
// daily expiry, so a batch of views fetches each ticker at most once a day.
func newDailyClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// ChartAPI fetches daily closes from a chart-style JSON endpoint
// (timestamps plus close arrays, one request per ticker). The zero value is
// not usable; use NewChartAPI.
type ChartAPI struct {
	base   string // endpoint prefix, ticker appended
	client *http.Client
}

const defaultChartBase = "https://query1.finance.yahoo.com/v8/finance/chart/"

// NewChartAPI returns a ChartAPI with a daily-expiring disk cache.
// An empty base selects the default public endpoint.
func NewChartAPI(base string) *ChartAPI {
	if base == "" {
		base = defaultChartBase
	}
	return &ChartAPI{base: base, client: newDailyClient()}
}

// DailyCloses fetches the close series for each ticker from 'from' through
// today. Tickers that fail are logged and skipped; the table can come back
// partially or fully empty, never nil.
func (c *ChartAPI) DailyCloses(tickers []string, from Date) (*PriceTable, error) {
	table := NewPriceTable()
	for _, ticker := range tickers {
		if err := c.fetchOne(table, ticker, from); err != nil {
			log.Printf("could not fetch %q: %v", ticker, err)
		}
	}
	return table, nil
}

func (c *ChartAPI) fetchOne(table *PriceTable, ticker string, from Date) error {
	addr := fmt.Sprintf("%s%s?period1=%d&period2=%d&interval=1d",
		c.base, ticker, from.time().Unix(), time.Now().Unix())

	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return err
	}

	timestamps, err := jsonlist(jobj, "$.chart.result[0].timestamp[*]")
	if err != nil {
		return err
	}
	closes, err := jsonlist(jobj, "$.chart.result[0].indicators.quote[0].close[*]")
	if err != nil {
		return err
	}
	if len(timestamps) != len(closes) {
		return fmt.Errorf("mismatched series for %q: %d timestamps, %d closes", ticker, len(timestamps), len(closes))
	}

	for i, ts := range timestamps {
		sec, ok := ts.(float64)
		if !ok {
			continue
		}
		price, ok := closes[i].(float64) // null closes (holidays) are skipped
		if !ok || price == 0 {
			continue
		}
		on := NewDate(time.Unix(int64(sec), 0).UTC().Date())
		table.Append(ticker, on, price)
	}
	return nil
}

// jsonlist evaluates a jsonpath expression expected to yield a list.
func jsonlist(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer; normalize to a list.
		return []any{jval}, nil
	}
	return jlist, nil
}
