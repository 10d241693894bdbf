package folio

import (
	"math"
	"testing"
)

func TestPortfolioValues(t *testing.T) {
	l := newTestLedger(
		tx("2025-01-01", taxable, "", "ELECTRONIC FUNDS TRANSFER RECEIVED", 0, 1000, 0),
		tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -500, 100),
	)
	holdings := HoldingsHistory(l, testPolicies(), MustParseDate("2025-01-04"))

	prices := NewPriceTable()
	prices.Append("AAPL", MustParseDate("2025-01-02"), 100)
	prices.Append("AAPL", MustParseDate("2025-01-04"), 110)

	values := PortfolioValues(holdings, prices)

	testCases := []struct {
		day  string
		want float64
	}{
		{"2025-01-02", 1000}, // 5*100 + 500 cash
		{"2025-01-03", 1000}, // price forward-filled
		{"2025-01-04", 1050}, // 5*110 + 500 cash
	}
	for _, tc := range testCases {
		got, ok := values.Get(MustParseDate(tc.day))
		if !ok || math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("value on %s = (%v, %v), want %v", tc.day, got, ok, tc.want)
		}
	}
	// 2025-01-01 predates any price, so the series must not cover it.
	if _, ok := values.Get(MustParseDate("2025-01-01")); ok {
		t.Error("series covers a day before the first known price")
	}
}

func TestPortfolioValuesUnpricedSymbolIsZero(t *testing.T) {
	l := newTestLedger(
		tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -500, 100),
		tx("2025-01-02", retirement, "MEGACORP UNITIZED", "CONTRIBUTIONS", 10, -120, 0),
	)
	holdings := HoldingsHistory(l, testPolicies(), MustParseDate("2025-01-02"))

	prices := NewPriceTable()
	prices.Append("AAPL", MustParseDate("2025-01-02"), 100)

	values := PortfolioValues(holdings, prices)
	got, ok := values.Get(MustParseDate("2025-01-02"))
	if !ok || math.Abs(got-0) > 1e-9 {
		// 5*100 - 500 cash = 0; the unpriced fund contributes nothing.
		t.Errorf("value = (%v, %v), want 0", got, ok)
	}
}

func TestPortfolioValuesEmptyInputs(t *testing.T) {
	if v := PortfolioValues(nil, NewPriceTable()); v.Len() != 0 {
		t.Errorf("no holdings: len = %d, want 0", v.Len())
	}
	l := newTestLedger(tx("2025-01-02", taxable, "AAPL", "YOU BOUGHT", 5, -500, 0))
	holdings := HoldingsHistory(l, testPolicies(), MustParseDate("2025-01-02"))
	if v := PortfolioValues(holdings, NewPriceTable()); v.Len() != 0 {
		t.Errorf("no prices: len = %d, want 0", v.Len())
	}
}
