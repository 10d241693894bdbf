package folio

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
	"strings"
)

// Category is the closed set of semantic transaction kinds. Every raw row
// maps to exactly one Category; downstream engines switch exhaustively on it.
type Category int

const (
	// Other is the default for unmapped or malformed action text.
	Other Category = iota
	// Deposit is external cash entering the portfolio.
	Deposit
	// Withdrawal is external cash leaving the portfolio.
	Withdrawal
	// Buy is a security purchase, including retirement-plan contributions.
	Buy
	// Sell is a security sale.
	Sell
	// Distribution is a stock-split share distribution (free shares).
	Distribution
	// Dividend is a cash dividend.
	Dividend
	// Reinvestment is a dividend reinvested into shares, net-zero cash.
	Reinvestment
	// Tax is a foreign tax charge.
	Tax
	// Fee is an advisory fee charge.
	Fee
)

func (c Category) String() string {
	switch c {
	case Deposit:
		return "DEPOSIT"
	case Withdrawal:
		return "WITHDRAWAL"
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Distribution:
		return "DISTRIBUTION"
	case Dividend:
		return "DIVIDEND"
	case Reinvestment:
		return "REINVESTMENT"
	case Tax:
		return "TAX"
	case Fee:
		return "FEE"
	default:
		return "OTHER"
	}
}

// MarshalJSON implements the json.Marshaler interface for Category.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Classify maps a raw transaction row to its Category. Rules are evaluated
// in priority order, first match wins; ambiguous or malformed text falls
// through to Other. Pure function, no side effects.
func Classify(action, description string, amount Money) Category {
	act := strings.ToUpper(action)
	desc := strings.ToUpper(description)

	contains := func(needle string) bool {
		return strings.Contains(act, needle) || strings.Contains(desc, needle)
	}

	switch {
	case contains("ELECTRONIC FUNDS TRANSFER"):
		if amount.IsPositive() {
			return Deposit
		}
		return Withdrawal
	case contains("JOURNALED SPP PURCHASE CREDIT"):
		return Deposit
	case strings.Contains(act, "YOU BOUGHT"), strings.Contains(act, "CONTRIBUTIONS"):
		return Buy
	case strings.Contains(act, "YOU SOLD"):
		return Sell
	case strings.Contains(act, "DISTRIBUTION"):
		return Distribution
	case strings.Contains(act, "DIVIDEND"):
		return Dividend
	case strings.Contains(act, "REINVESTMENT"):
		return Reinvestment
	case strings.Contains(act, "FOREIGN TAX"):
		return Tax
	case strings.Contains(act, "ADVISORY FEE"):
		return Fee
	default:
		return Other
	}
}

// Transaction is one normalized, immutable brokerage ledger row. The
// ingestion layer guarantees the table is deduplicated and date-valid;
// this package classifies it and replays it.
type Transaction struct {
	Date        Date     `json:"date"`
	Account     string   `json:"account"`
	Symbol      string   `json:"symbol,omitempty"` // empty for non-security events
	Action      string   `json:"action"`
	Description string   `json:"description,omitempty"`
	Quantity    Quantity `json:"quantity"` // signed, negative for sells
	Amount      Money    `json:"amount"`   // signed, negative = cash out
	Price       Money    `json:"price"`    // per-share, may be zero/unknown
	Category    Category `json:"category"`

	seq int // ingestion order, tie-break for same-day rows
}

// Seq returns the transaction's ingestion sequence number, assigned by the
// ledger on append.
func (t Transaction) Seq() int { return t.seq }

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s %s", t.Date, t.Category, t.Symbol, t.Quantity, t.Amount.SignedString())
}

// Ledger is a totally ordered sequence of classified transactions.
//
// Ordering is an explicit precondition of every replay in this package:
// transactions are keyed by (date, ingestion sequence number), and FIFO lot
// consumption and daily snapshots depend on it. Append maintains the order.
type Ledger struct {
	transactions []Transaction
	nextSeq      int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append classifies and appends transactions, assigning ingestion sequence
// numbers in arrival order, and keeps the ledger chronologically sorted.
// Same-day transactions keep their arrival order.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		tx.Category = Classify(tx.Action, tx.Description, tx.Amount)
		tx.seq = l.nextSeq
		l.nextSeq++
		l.transactions = append(l.transactions, tx)
	}
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions on the same day keep their ingestion order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over transactions in chronological order.
// With filters, a transaction is yielded when any filter accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if len(filters) > 0 {
				accept := false
				for _, filter := range filters {
					if filter(tx) {
						accept = true
						break
					}
				}
				if !accept {
					continue
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction,
// or the zero date for an empty ledger.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction,
// or the zero date for an empty ledger.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

// Symbols iterates over the unique non-empty symbols in the ledger, sorted.
func (l *Ledger) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, tx := range l.transactions {
			if tx.Symbol != "" {
				seen[tx.Symbol] = struct{}{}
			}
		}
		symbols := slices.Collect(maps.Keys(seen))
		slices.Sort(symbols)
		for _, s := range symbols {
			if !yield(s) {
				return
			}
		}
	}
}

// Accounts iterates over the unique account identifiers in the ledger, sorted.
func (l *Ledger) Accounts() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, tx := range l.transactions {
			if tx.Account != "" {
				seen[tx.Account] = struct{}{}
			}
		}
		accounts := slices.Collect(maps.Keys(seen))
		slices.Sort(accounts)
		for _, a := range accounts {
			if !yield(a) {
				return
			}
		}
	}
}

// View returns a ledger restricted to one account, preserving dates and
// ingestion sequence numbers. The empty account name means the combined view.
func (l *Ledger) View(account string) *Ledger {
	if account == "" {
		return l
	}
	view := &Ledger{nextSeq: l.nextSeq}
	for _, tx := range l.transactions {
		if tx.Account == account {
			view.transactions = append(view.transactions, tx)
		}
	}
	return view
}

// ByCategory returns a predicate accepting transactions of any given category.
func ByCategory(categories ...Category) func(Transaction) bool {
	return func(tx Transaction) bool {
		return slices.Contains(categories, tx.Category)
	}
}

// BySymbol returns a predicate accepting transactions on a given symbol.
func BySymbol(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}
