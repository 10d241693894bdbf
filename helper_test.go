package folio

// helpers shared by tests in this package.

const (
	taxable    = "Individual"
	retirement = "MEGACORP 401K PLAN"
)

// testPolicies marks the retirement account used across fixtures.
func testPolicies() PolicySet { return NewPolicySet(retirement) }

// tx builds a classified-on-append transaction row with the common fields.
func tx(on, account, symbol, action string, qty, amount, price float64) Transaction {
	return Transaction{
		Date:     MustParseDate(on),
		Account:  account,
		Symbol:   symbol,
		Action:   action,
		Quantity: Q(qty),
		Amount:   USD(amount),
		Price:    USD(price),
	}
}

// newTestLedger appends the transactions in the given ingestion order.
func newTestLedger(txs ...Transaction) *Ledger {
	l := NewLedger()
	l.Append(txs...)
	return l
}
