package folio

// PortfolioValues computes the daily total portfolio value series: for each
// snapshot day covered by the price table, the sum over symbols of
// quantity times the forward-filled price, plus the day's cash balance.
//
// The date range is the intersection of the holdings calendar and the price
// table's coverage; there is no extrapolation beyond either side. A symbol
// with no resolvable price anywhere contributes zero value, and a day with
// no priced positions and no cash yields 0, not an error.
func PortfolioValues(holdings []Snapshot, prices *PriceTable) *History[float64] {
	values := &History[float64]{}
	if len(holdings) == 0 {
		return values
	}

	// first date any price is known; before that the table cannot value anything.
	var priceStart Date
	for symbol := range prices.Symbols() {
		first, _ := prices.Series(symbol).First()
		if priceStart.IsZero() || first.Before(priceStart) {
			priceStart = first
		}
	}
	if priceStart.IsZero() {
		return values
	}

	for _, snap := range holdings {
		if snap.On.Before(priceStart) {
			continue
		}
		total := 0.0
		for symbol, qty := range snap.Positions {
			if qty.IsZero() {
				continue
			}
			price, ok := prices.AsOf(symbol, snap.On)
			if !ok {
				continue // no price coverage: value as zero, keep visible in holdings
			}
			total += qty.InexactFloat64() * price
		}
		values.Append(snap.On, total+snap.Cash.InexactFloat64())
	}
	return values
}
