package folio

import (
	"bytes"
	"strings"
	"testing"
)

const sampleJSONL = `{"date":"2025-01-01","account":"Individual","action":"ELECTRONIC FUNDS TRANSFER RECEIVED","quantity":0,"amount":1000,"price":0}
{"date":"2025-01-02","account":"Individual","symbol":"AAPL","action":"YOU BOUGHT","description":"APPLE INC","quantity":5,"amount":-500.25,"price":100.05}

{"date":"2025-01-02","account":"Individual","symbol":"AAPL","action":"YOU SOLD","quantity":-2,"amount":210,"price":105}
`

func TestDecodeLedger(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleJSONL))
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3 (empty line skipped)", l.Len())
	}

	var categories []Category
	for _, tx := range l.Transactions() {
		categories = append(categories, tx.Category)
	}
	want := []Category{Deposit, Buy, Sell}
	for i, c := range want {
		if categories[i] != c {
			t.Errorf("row %d classified %s, want %s", i, categories[i], c)
		}
	}
}

func TestDecodeLedgerBadLine(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"date":"2025-01-01"}` + "\n" + `{not json}` + "\n"))
	if err == nil {
		t.Fatal("expected an error for malformed JSONL")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not point at the offending line", err)
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleJSONL))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}
	again, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if again.Len() != l.Len() {
		t.Fatalf("round trip len = %d, want %d", again.Len(), l.Len())
	}
	originals := make([]Transaction, 0, l.Len())
	for _, tx := range l.Transactions() {
		originals = append(originals, tx)
	}
	for i, tx := range again.Transactions() {
		o := originals[i]
		if tx.Date != o.Date || tx.Account != o.Account || tx.Symbol != o.Symbol ||
			!tx.Quantity.Equal(o.Quantity) || !tx.Amount.Equal(o.Amount) || tx.Category != o.Category {
			t.Errorf("row %d changed across round trip:\ngot  %s\nwant %s", i, tx, o)
		}
	}
}

func TestEncodeReport(t *testing.T) {
	l, prices := reportFixture()
	r := NewReport(l, "", prices, testPolicies(), MustParseDate("2025-03-01"))

	var buf bytes.Buffer
	if err := EncodeReport(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, field := range []string{`"asOf": "2025-03-01"`, `"currentValue"`, `"metrics"`, `"holdings"`} {
		if !strings.Contains(out, field) {
			t.Errorf("report JSON missing %s:\n%s", field, out)
		}
	}
}
