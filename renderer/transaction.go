package renderer

import (
	"fmt"
	"strings"

	"github.com/rvail/folio"
)

// Transaction renders a single transaction to a one line string.
func Transaction(tx folio.Transaction) string {
	switch tx.Category {
	case folio.Buy:
		return fmt.Sprintf("Bought %s of %s for %s", tx.Quantity, tx.Symbol, tx.Amount.Abs())
	case folio.Sell:
		return fmt.Sprintf("Sold %s of %s for %s", tx.Quantity.Abs(), tx.Symbol, tx.Amount)
	case folio.Dividend:
		return fmt.Sprintf("Dividend of %s from %s", tx.Amount, tx.Symbol)
	case folio.Reinvestment:
		return fmt.Sprintf("Reinvested %s into %s of %s", tx.Amount.Abs(), tx.Quantity, tx.Symbol)
	case folio.Distribution:
		return fmt.Sprintf("Received %s shares of %s", tx.Quantity, tx.Symbol)
	case folio.Deposit:
		return fmt.Sprintf("Deposited %s", tx.Amount)
	case folio.Withdrawal:
		return fmt.Sprintf("Withdrew %s", tx.Amount.Abs())
	case folio.Tax:
		return fmt.Sprintf("Paid %s tax on %s", tx.Amount.Abs(), tx.Symbol)
	case folio.Fee:
		return fmt.Sprintf("Paid %s fee", tx.Amount.Abs())
	default:
		return tx.Action
	}
}

// Transactions renders a chronological transaction listing as markdown.
func Transactions(txs []folio.Transaction) string {
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("No transactions.\n")
		return b.String()
	}
	for _, tx := range txs {
		fmt.Fprintf(&b, "- %s [%s] %s\n", tx.Date, tx.Account, Transaction(tx))
	}
	return b.String()
}
