package folio

import (
	"iter"
	"log"
	"maps"
	"slices"
)

// PriceTable holds one daily closing-price series per symbol. Series are
// sparse; AsOf performs the forward fill at read time, so a price for day D
// can never derive from a date later than D.
type PriceTable struct {
	columns map[string]*History[float64]
}

// NewPriceTable returns an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{columns: make(map[string]*History[float64])}
}

// IsEmpty reports whether the table has no prices at all.
func (p *PriceTable) IsEmpty() bool {
	for _, h := range p.columns {
		if h.Len() > 0 {
			return false
		}
	}
	return true
}

// Append records the closing price of a symbol on a date, overwriting any
// existing value for that day.
func (p *PriceTable) Append(symbol string, on Date, price float64) {
	h, ok := p.columns[symbol]
	if !ok {
		h = &History[float64]{}
		p.columns[symbol] = h
	}
	h.Append(on, price)
}

// Get returns the price recorded exactly on a date.
func (p *PriceTable) Get(symbol string, on Date) (float64, bool) {
	h, ok := p.columns[symbol]
	if !ok {
		return 0, false
	}
	return h.Get(on)
}

// AsOf returns the most recent price known on or before a date. Symbols with
// no price source anywhere yield false; consumers treat them as zero value.
func (p *PriceTable) AsOf(symbol string, on Date) (float64, bool) {
	h, ok := p.columns[symbol]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// Latest returns the last known price of a symbol and its date.
func (p *PriceTable) Latest(symbol string) (Date, float64, bool) {
	h, ok := p.columns[symbol]
	if !ok || h.Len() == 0 {
		return Date{}, 0, false
	}
	day, price := h.Latest()
	return day, price, true
}

// Symbols iterates over the symbols that have at least one price, sorted.
func (p *PriceTable) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		symbols := slices.Collect(maps.Keys(p.columns))
		slices.Sort(symbols)
		for _, s := range symbols {
			if p.columns[s].Len() == 0 {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Series returns the raw history for a symbol, or nil.
func (p *PriceTable) Series(symbol string) *History[float64] {
	return p.columns[symbol]
}

// TickerMap maps ledger symbols to quote-source tickers. An empty mapped
// value marks a symbol with no market data available; unmapped symbols
// resolve to themselves.
type TickerMap map[string]string

// Resolve returns the quote ticker for a ledger symbol and whether the
// symbol is quotable at all.
func (m TickerMap) Resolve(symbol string) (ticker string, ok bool) {
	mapped, found := m[symbol]
	if !found {
		return symbol, true
	}
	if mapped == "" {
		return "", false
	}
	return mapped, true
}

// TransactionPrices derives a sparse price series from the ledger itself:
// for each (date, symbol) with a buy, sell or reinvestment bearing a nonzero
// per-share price, the last such price of the day wins. It is the fallback
// source when market data is missing or has not caught up.
func TransactionPrices(l *Ledger) *PriceTable {
	implied := NewPriceTable()
	for _, tx := range l.Transactions(ByCategory(Buy, Sell, Reinvestment)) {
		if tx.Symbol == "" || !tx.Price.IsPositive() {
			continue
		}
		// ledger order makes the last same-day price the survivor.
		implied.Append(tx.Symbol, tx.Date, tx.Price.InexactFloat64())
	}
	return implied
}

// MergePrices combines a market price table with a transaction-implied one.
// The date index is the union of both; where both tables hold a price for
// the same (date, symbol), market data takes precedence. Forward filling is
// deferred to AsOf, and leading gaps are never back-filled.
func MergePrices(market, implied *PriceTable) *PriceTable {
	merged := NewPriceTable()
	for symbol := range implied.Symbols() {
		for on, price := range implied.Series(symbol).Values() {
			merged.Append(symbol, on, price)
		}
	}
	for symbol := range market.Symbols() {
		for on, price := range market.Series(symbol).Values() {
			merged.Append(symbol, on, price) // overwrites implied on conflict
		}
	}
	return merged
}

// QuoteSource is the market data boundary: given quote tickers and a start
// date it returns a daily close table. It may return a partially or fully
// empty table on failure; it must not be required to succeed.
type QuoteSource interface {
	DailyCloses(tickers []string, from Date) (*PriceTable, error)
}

// FetchPrices builds the merged daily price table for all symbols of a
// ledger: it resolves ticker remaps and unquotable markers, fetches market
// closes once for the whole batch (degrading to an empty table on failure),
// injects manual prices at the most recent date for unquotable instruments,
// and merges transaction-implied prices underneath.
//
// The result is computed once and shared, read-only, across account views.
func FetchPrices(src QuoteSource, l *Ledger, remap TickerMap, manual map[string]float64) *PriceTable {
	from := l.OldestTransactionDate()

	var tickers []string
	bySymbol := make(map[string]string) // quote ticker -> ledger symbol
	for symbol := range l.Symbols() {
		ticker, ok := remap.Resolve(symbol)
		if !ok {
			continue
		}
		if _, manualOnly := manual[symbol]; manualOnly {
			continue
		}
		tickers = append(tickers, ticker)
		bySymbol[ticker] = symbol
	}

	market := NewPriceTable()
	if src != nil && len(tickers) > 0 {
		fetched, err := src.DailyCloses(tickers, from)
		if err != nil {
			log.Printf("quote fetch failed, continuing with ledger prices only: %v", err)
		} else {
			for ticker := range fetched.Symbols() {
				symbol, ok := bySymbol[ticker]
				if !ok {
					symbol = ticker
				}
				for on, price := range fetched.Series(ticker).Values() {
					market.Append(symbol, on, price)
				}
			}
		}
	}

	// unquotable instruments (proprietary fund units) get a single point
	// price at the most recent date; earlier dates stay unset.
	today := Today()
	for symbol, price := range manual {
		market.Append(symbol, today, price)
	}

	return MergePrices(market, TransactionPrices(l))
}
