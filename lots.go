package folio

import (
	"maps"
	"slices"
)

// dustThreshold suppresses floating-point residue from split and
// partial-lot arithmetic in the current holdings output.
var dustThreshold = Q(0.01)

// lot is a single acquisition of a security, used for FIFO cost basis.
// Lots for a symbol form an ordered queue, oldest first.
type lot struct {
	Date     Date
	Quantity Quantity // remaining shares, always >= 0
	Cost     Money    // cost per share; zero for split distributions
}

type lots []lot

// consume debits a quantity from the queue oldest-first. It returns the
// surviving queue, the cost basis of the consumed shares, and the quantity
// actually covered. Covered falls short of asked when the queue empties,
// which signals missing acquisition history upstream.
func (l lots) consume(asked Quantity) (remaining lots, costBasis Money, covered Quantity) {
	costBasis = USD(0)
	covered = Q(0)
	toSell := asked

	for i, currentLot := range l {
		if toSell.IsZero() {
			remaining = append(remaining, l[i:]...)
			return remaining, costBasis, covered
		}
		if currentLot.Quantity.GreaterThan(toSell) {
			// Partial sale from this lot, the lot survives.
			costBasis = costBasis.Add(currentLot.Cost.Mul(toSell))
			covered = covered.Add(toSell)
			currentLot.Quantity = currentLot.Quantity.Sub(toSell)
			remaining = append(remaining, currentLot)
			toSell = Q(0)
			continue
		}
		// Full sale of this lot, it is removed.
		costBasis = costBasis.Add(currentLot.Cost.Mul(currentLot.Quantity))
		covered = covered.Add(currentLot.Quantity)
		toSell = toSell.Sub(currentLot.Quantity)
	}
	return remaining, costBasis, covered
}

// Holding is an open position derived from the remaining FIFO lots.
type Holding struct {
	Symbol    string   `json:"symbol"`
	Quantity  Quantity `json:"quantity"`
	AvgCost   Money    `json:"avgCost"`
	TotalCost Money    `json:"totalCost"`

	// Enrichment filled by the report layer from the latest merged price.
	CurrentPrice Money   `json:"currentPrice"`
	MarketValue  Money   `json:"marketValue"`
	Unrealized   Money   `json:"unrealizedPL"`
	Return       Percent `json:"returnPct"`
}

// RealizedSale is the profit or loss locked in by one sell transaction,
// aggregating however many lots it consumed. Immutable once created.
type RealizedSale struct {
	Symbol    string   `json:"symbol"`
	Date      Date     `json:"date"`
	Quantity  Quantity `json:"quantity"` // shares actually sold
	Price     Money    `json:"price"`    // sale price per share
	CostBasis Money    `json:"costBasis"`
	Proceeds  Money    `json:"proceeds"`
	Realized  Money    `json:"realizedPL"`

	// Degraded marks a sale whose quantity exceeded the remaining lots
	// (missing buy history, e.g. a transfer-in before the ledger starts).
	// The record keeps whatever cost basis was actually consumed.
	Degraded bool `json:"degraded,omitempty"`
}

// CostBasis replays a ledger view through per-symbol FIFO lot queues and
// returns the current open holdings and the realized sale records.
//
// Buys and reinvestments create a lot at |amount|/quantity per share;
// split distributions create a zero-cost lot; sells consume oldest-first.
// The sale price is derived as |amount/quantity| so realized P/L stays
// consistent with the cash the sale actually moved.
func CostBasis(l *Ledger) ([]Holding, []RealizedSale) {
	queues := make(map[string]lots)
	var sales []RealizedSale

	for _, tx := range l.Transactions(ByCategory(Buy, Reinvestment, Distribution, Sell)) {
		if tx.Symbol == "" {
			continue
		}
		switch tx.Category {
		case Buy, Reinvestment:
			if !tx.Quantity.IsPositive() {
				continue
			}
			cost := tx.Amount.Abs().Div(tx.Quantity)
			queues[tx.Symbol] = append(queues[tx.Symbol], lot{Date: tx.Date, Quantity: tx.Quantity, Cost: cost})

		case Distribution:
			if !tx.Quantity.IsPositive() {
				continue
			}
			queues[tx.Symbol] = append(queues[tx.Symbol], lot{Date: tx.Date, Quantity: tx.Quantity, Cost: USD(0)})

		case Sell:
			asked := tx.Quantity.Abs()
			if asked.IsZero() {
				continue
			}
			price := tx.Amount.Div(tx.Quantity).Abs()

			remaining, costBasis, covered := queues[tx.Symbol].consume(asked)
			queues[tx.Symbol] = remaining

			proceeds := price.Mul(covered)
			sales = append(sales, RealizedSale{
				Symbol:    tx.Symbol,
				Date:      tx.Date,
				Quantity:  covered,
				Price:     price,
				CostBasis: costBasis,
				Proceeds:  proceeds,
				Realized:  proceeds.Sub(costBasis),
				Degraded:  covered.LessThan(asked),
			})
		}
	}

	var holdings []Holding
	symbols := slices.Collect(maps.Keys(queues))
	slices.Sort(symbols)
	for _, symbol := range symbols {
		total := Q(0)
		totalCost := USD(0)
		for _, currentLot := range queues[symbol] {
			total = total.Add(currentLot.Quantity)
			totalCost = totalCost.Add(currentLot.Cost.Mul(currentLot.Quantity))
		}
		if !total.GreaterThan(dustThreshold) {
			continue
		}
		holdings = append(holdings, Holding{
			Symbol:    symbol,
			Quantity:  total,
			AvgCost:   totalCost.Div(total),
			TotalCost: totalCost,
		})
	}
	return holdings, sales
}
