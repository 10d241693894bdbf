package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// row is the wire form of one normalized transaction. Amounts are plain
// decimals: the ledger is single-currency and the ingestion layer has
// already stripped formatting.
type row struct {
	Date        Date            `json:"date"`
	Account     string          `json:"account"`
	Symbol      string          `json:"symbol,omitempty"`
	Action      string          `json:"action"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Price       decimal.Decimal `json:"price"`
}

// DecodeLedger reads the normalized transaction table from a JSONL stream,
// one row per line, and returns a classified, chronologically sorted
// ledger. Rows keep their stream order as the same-day tie-break, which is
// the ordering precondition of every replay in this package.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec row
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode transaction on line %d: %w", line, err)
		}
		ledger.Append(Transaction{
			Date:        rec.Date,
			Account:     rec.Account,
			Symbol:      rec.Symbol,
			Action:      rec.Action,
			Description: rec.Description,
			Quantity:    Q(rec.Quantity),
			Amount:      M(rec.Amount, "USD"),
			Price:       M(rec.Price, "USD"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes the ledger back as JSONL in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	for _, tx := range l.Transactions() {
		rec := row{
			Date:        tx.Date,
			Account:     tx.Account,
			Symbol:      tx.Symbol,
			Action:      tx.Action,
			Description: tx.Description,
			Quantity:    tx.Quantity.value,
			Amount:      tx.Amount.value,
			Price:       tx.Price.value,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("could not encode transaction on %s: %w", tx.Date, err)
		}
	}
	return nil
}

// EncodeReport writes a report as indented JSON for the presentation layer.
func EncodeReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
