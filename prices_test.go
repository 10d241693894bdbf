package folio

import (
	"errors"
	"testing"
)

func TestTransactionPrices(t *testing.T) {
	l := newTestLedger(
		tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -500, 100),
		tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -505, 101), // same day, later row wins
		tx("2025-01-03", taxable, "AAPL", "REINVESTMENT", 0.5, -51, 102),
		tx("2025-01-04", taxable, "AAPL", "YOU SOLD", -2, 210, 105),
		tx("2025-01-05", taxable, "AAPL", "DIVIDEND RECEIVED", 0, 25, 0), // no per-share price
		tx("2025-01-06", taxable, "AAPL", "YOU BOUGHT", 1, -100, 0),      // zero price ignored
	)
	implied := TransactionPrices(l)

	testCases := []struct {
		day    string
		want   float64
		wantOk bool
	}{
		{"2025-01-02", 101, true},
		{"2025-01-03", 102, true},
		{"2025-01-04", 105, true},
		{"2025-01-05", 0, false},
		{"2025-01-06", 0, false},
	}
	for _, tc := range testCases {
		got, ok := implied.Get("AAPL", MustParseDate(tc.day))
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("Get(AAPL, %s) = (%v, %v), want (%v, %v)", tc.day, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestMergePricesMarketWins(t *testing.T) {
	day := MustParseDate("2025-01-02")
	market := NewPriceTable()
	market.Append("AAPL", day, 100.5)
	implied := NewPriceTable()
	implied.Append("AAPL", day, 101)                         // both on the same day
	implied.Append("AAPL", MustParseDate("2025-01-03"), 103) // implied only
	implied.Append("FUND", day, 10)                          // symbol market never saw

	merged := MergePrices(market, implied)
	if got, _ := merged.Get("AAPL", day); got != 100.5 {
		t.Errorf("conflict day: got %v, want market 100.5", got)
	}
	if got, _ := merged.Get("AAPL", MustParseDate("2025-01-03")); got != 103 {
		t.Errorf("implied-only day: got %v, want 103", got)
	}
	if got, _ := merged.Get("FUND", day); got != 10 {
		t.Errorf("implied-only symbol: got %v, want 10", got)
	}
}

func TestPriceTableAsOfNeverLooksAhead(t *testing.T) {
	p := NewPriceTable()
	p.Append("AAPL", MustParseDate("2025-01-05"), 100)
	if _, ok := p.AsOf("AAPL", MustParseDate("2025-01-04")); ok {
		t.Error("AsOf returned a price recorded on a later date")
	}
	if got, ok := p.AsOf("AAPL", MustParseDate("2025-01-08")); !ok || got != 100 {
		t.Errorf("AsOf forward fill = (%v, %v), want (100, true)", got, ok)
	}
}

func TestTickerMapResolve(t *testing.T) {
	m := TickerMap{"FID BLUE CHIP": "FBGRX", "MEGACORP UNITIZED": ""}

	testCases := []struct {
		symbol string
		want   string
		wantOk bool
	}{
		{"AAPL", "AAPL", true}, // unmapped resolves to itself
		{"FID BLUE CHIP", "FBGRX", true},
		{"MEGACORP UNITIZED", "", false}, // unquotable
	}
	for _, tc := range testCases {
		got, ok := m.Resolve(tc.symbol)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.symbol, got, ok, tc.want, tc.wantOk)
		}
	}
}

// stubSource is a canned QuoteSource for FetchPrices tests.
type stubSource struct {
	table   *PriceTable
	err     error
	tickers []string
}

func (s *stubSource) DailyCloses(tickers []string, from Date) (*PriceTable, error) {
	s.tickers = tickers
	return s.table, s.err
}

func TestFetchPrices(t *testing.T) {
	l := newTestLedger(
		tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -500, 100),
		tx("2025-01-02", retirement, "MEGACORP UNITIZED", "CONTRIBUTIONS", 10, -120, 12),
	)
	remap := TickerMap{}
	manual := map[string]float64{"MEGACORP UNITIZED": 13.5}

	market := NewPriceTable()
	market.Append("AAPL", MustParseDate("2025-01-03"), 102)
	src := &stubSource{table: market}

	prices := FetchPrices(src, l, remap, manual)

	// manual-only symbols never reach the quote source.
	if len(src.tickers) != 1 || src.tickers[0] != "AAPL" {
		t.Errorf("fetched tickers = %v, want [AAPL]", src.tickers)
	}
	if got, _ := prices.Get("AAPL", MustParseDate("2025-01-02")); got != 100 {
		t.Errorf("implied price = %v, want 100", got)
	}
	if got, _ := prices.Get("AAPL", MustParseDate("2025-01-03")); got != 102 {
		t.Errorf("market price = %v, want 102", got)
	}
	if got, _ := prices.Get("MEGACORP UNITIZED", Today()); got != 13.5 {
		t.Errorf("manual price = %v, want 13.5", got)
	}
}

func TestFetchPricesDegradesOnError(t *testing.T) {
	l := newTestLedger(tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -500, 100))
	src := &stubSource{err: errors.New("rate limited")}

	prices := FetchPrices(src, l, nil, nil)
	if got, ok := prices.Get("AAPL", MustParseDate("2025-01-02")); !ok || got != 100 {
		t.Errorf("fallback implied price = (%v, %v), want (100, true)", got, ok)
	}
}
