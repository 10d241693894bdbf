package folio

import "strings"

// DailyCashFlows extracts the sparse daily net external cash flow series
// from a ledger view: money entering or leaving the portfolio from outside,
// as opposed to internal trading.
//
// Qualifying flows are Deposit and Withdrawal (full signed amount), and Buy
// restricted to retirement-plan accounts, where the contribution is
// economically a deposit settling directly into a security; its absolute
// amount counts as a positive inflow. Buys in other accounts are internal
// conversions of capital already counted and are excluded. Same-day flows
// are summed; dates with no qualifying flow have no entry.
func DailyCashFlows(l *Ledger, policies PolicySet) *History[float64] {
	flows := &History[float64]{}
	for _, tx := range l.Transactions(ByCategory(Deposit, Withdrawal, Buy)) {
		amount := 0.0
		switch tx.Category {
		case Buy:
			if policies.Of(tx.Account).ContributionIsExternalInflow {
				amount = tx.Amount.Abs().InexactFloat64()
			}
		default:
			amount = tx.Amount.InexactFloat64()
		}
		if amount != 0 {
			flows.AppendAdd(tx.Date, amount)
		}
	}
	return flows
}

// NetInvested computes the cumulative external capital series: daily flows
// zero-filled onto the full calendar from the ledger's first transaction
// through 'through', then summed. It is independent of market performance.
func NetInvested(l *Ledger, policies PolicySet, through Date) *History[float64] {
	invested := &History[float64]{}
	if l.Len() == 0 {
		return invested
	}
	flows := DailyCashFlows(l, policies)
	running := 0.0
	for day := l.OldestTransactionDate(); !day.After(through); day = day.Add(1) {
		if flow, ok := flows.Get(day); ok {
			running += flow
		}
		invested.Append(day, running)
	}
	return invested
}

// InvestedBreakdown decomposes Net Invested by origin of the capital.
type InvestedBreakdown struct {
	Transfers     Money `json:"transfers"`     // electronic fund transfers in
	ESPP          Money `json:"espp"`          // employee stock purchase plan credits
	Contributions Money `json:"contributions"` // retirement-plan contributions
	Withdrawals   Money `json:"withdrawals"`   // signed negative
	Total         Money `json:"total"`
}

// NetInvestedBreakdown splits the external capital of a ledger view into
// transfers, ESPP credits, retirement contributions and withdrawals.
func NetInvestedBreakdown(l *Ledger, policies PolicySet) InvestedBreakdown {
	b := InvestedBreakdown{
		Transfers:     USD(0),
		ESPP:          USD(0),
		Contributions: USD(0),
		Withdrawals:   USD(0),
	}
	for _, tx := range l.Transactions(ByCategory(Deposit, Withdrawal, Buy)) {
		switch tx.Category {
		case Deposit:
			text := strings.ToUpper(tx.Action + " " + tx.Description)
			if strings.Contains(text, "ELECTRONIC FUNDS TRANSFER") {
				b.Transfers = b.Transfers.Add(tx.Amount)
			} else {
				// SPP purchase credits and other external deposits
				b.ESPP = b.ESPP.Add(tx.Amount)
			}
		case Withdrawal:
			b.Withdrawals = b.Withdrawals.Add(tx.Amount)
		case Buy:
			if policies.Of(tx.Account).ContributionIsExternalInflow {
				b.Contributions = b.Contributions.Add(tx.Amount.Abs())
			}
		}
	}
	b.Total = b.Transfers.Add(b.ESPP).Add(b.Contributions).Add(b.Withdrawals)
	return b
}
