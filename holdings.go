package folio

import "maps"

// Snapshot is the state of one account view at the end of one calendar day:
// per-symbol share quantities plus a cash balance. Snapshots are value
// copies; mutating the replay state never alters previously recorded days.
type Snapshot struct {
	On        Date
	Positions map[string]Quantity
	Cash      Money
}

// Position returns the share quantity held for a symbol, zero if untracked.
func (s Snapshot) Position(symbol string) Quantity {
	return s.Positions[symbol]
}

// HoldingsHistory replays a ledger view along the daily calendar, from the
// view's earliest transaction date through 'through', producing one snapshot
// per day. Same-day transactions apply in ingestion order.
//
// Cash semantics follow the account policy: a Buy in a retirement-plan
// account is the contribution inflow itself and does not debit cash; in any
// other account the (negative) amount is applied to cash.
func HoldingsHistory(l *Ledger, policies PolicySet, through Date) []Snapshot {
	if l.Len() == 0 {
		return nil
	}

	positions := make(map[string]Quantity)
	for symbol := range l.Symbols() {
		positions[symbol] = Q(0)
	}
	cash := USD(0)

	var history []Snapshot
	next := 0 // index of the first transaction not yet applied
	all := make([]Transaction, 0, l.Len())
	for _, tx := range l.Transactions() {
		all = append(all, tx)
	}

	for day := l.OldestTransactionDate(); !day.After(through); day = day.Add(1) {
		for next < len(all) && all[next].Date == day {
			cash = apply(positions, cash, all[next], policies.Of(all[next].Account))
			next++
		}
		history = append(history, Snapshot{
			On:        day,
			Positions: maps.Clone(positions),
			Cash:      cash,
		})
	}
	return history
}

// apply mutates positions and returns the new cash balance for one transaction.
func apply(positions map[string]Quantity, cash Money, tx Transaction, policy AccountPolicy) Money {
	addShares := func() {
		if tx.Symbol == "" {
			return
		}
		// a symbol first appearing mid-series joins the tracked set here;
		// earlier snapshots simply omit it.
		positions[tx.Symbol] = positions[tx.Symbol].Add(tx.Quantity)
	}

	switch tx.Category {
	case Deposit, Withdrawal, Dividend, Tax, Fee:
		return cash.Add(tx.Amount)
	case Buy:
		addShares()
		if policy.ContributionIsExternalInflow {
			// the contribution settles directly into the security;
			// no account cash was ever involved.
			return cash
		}
		return cash.Add(tx.Amount)
	case Sell:
		addShares()
		return cash.Add(tx.Amount)
	case Reinvestment, Distribution:
		addShares()
		return cash
	default:
		return cash
	}
}
