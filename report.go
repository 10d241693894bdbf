package folio

// Point is one dated value of a series, the serializable form of a History
// entry for the presentation boundary.
type Point struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

func points(h *History[float64]) []Point {
	pts := make([]Point, 0, h.Len())
	for on, v := range h.Values() {
		pts = append(pts, Point{Date: on, Value: v})
	}
	return pts
}

// Report is the full analytical output for one account view: the daily
// portfolio value and net invested series, the performance metrics per
// window, the current holdings and the realized sale records. It carries no
// presentation formatting; every field is plain and serializable.
type Report struct {
	Account string `json:"account,omitempty"` // empty for the combined view
	AsOf    Date   `json:"asOf"`

	CurrentValue    float64           `json:"currentValue"`
	NetInvested     float64           `json:"netInvested"`
	GainLoss        float64           `json:"gainLoss"`
	GainLossPct     Percent           `json:"gainLossPct"`
	Breakdown       InvestedBreakdown `json:"investedBreakdown"`
	Metrics         map[string]Metric `json:"metrics"`
	Holdings        []Holding         `json:"holdings"`
	Sales           []RealizedSale    `json:"realizedSales"`
	TotalRealized   Money             `json:"totalRealizedPL"`
	TotalUnrealized Money             `json:"totalUnrealizedPL"`

	Values   []Point `json:"values"`
	Invested []Point `json:"invested"`
}

// NewReport computes every analytical output for one account view of the
// ledger. The price table is computed once by the caller and shared,
// read-only, across views.
func NewReport(l *Ledger, account string, prices *PriceTable, policies PolicySet, asOf Date) *Report {
	view := l.View(account)

	snapshots := HoldingsHistory(view, policies, asOf)
	values := PortfolioValues(snapshots, prices)
	flows := DailyCashFlows(view, policies)
	invested := NetInvested(view, policies, asOf)
	holdings, sales := CostBasis(view)

	r := &Report{
		Account:         account,
		AsOf:            asOf,
		Breakdown:       NetInvestedBreakdown(view, policies),
		Metrics:         PerformanceMetrics(values, flows),
		Sales:           sales,
		TotalRealized:   USD(0),
		TotalUnrealized: USD(0),
		Values:          points(values),
		Invested:        points(invested),
	}
	if _, v := values.Latest(); values.Len() > 0 {
		r.CurrentValue = v
	}
	if _, v := invested.Latest(); invested.Len() > 0 {
		r.NetInvested = v
	}
	r.GainLoss = r.CurrentValue - r.NetInvested
	if r.NetInvested != 0 {
		r.GainLossPct = Percent(100 * r.GainLoss / r.NetInvested)
	}

	// enrich open positions with the latest merged price. A missing price
	// leaves the position visible with zero market value so the coverage
	// gap stays detectable.
	for i := range holdings {
		h := &holdings[i]
		price, ok := prices.AsOf(h.Symbol, asOf)
		if !ok {
			h.CurrentPrice = USD(0)
			h.MarketValue = USD(0)
			h.Unrealized = USD(0)
			continue
		}
		h.CurrentPrice = USD(price)
		h.MarketValue = h.CurrentPrice.Mul(h.Quantity)
		h.Unrealized = h.MarketValue.Sub(h.TotalCost)
		if !h.TotalCost.IsZero() {
			h.Return = Percent(100 * h.Unrealized.InexactFloat64() / h.TotalCost.InexactFloat64())
		}
	}
	r.Holdings = holdings

	for _, sale := range sales {
		r.TotalRealized = r.TotalRealized.Add(sale.Realized)
	}
	for _, h := range holdings {
		r.TotalUnrealized = r.TotalUnrealized.Add(h.Unrealized)
	}
	return r
}
