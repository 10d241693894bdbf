package renderer

import (
	"strings"
	"testing"

	"github.com/rvail/folio"
)

func testReport(t *testing.T) *folio.Report {
	t.Helper()

	l := folio.NewLedger()
	l.Append(
		folio.Transaction{
			Date:    folio.MustParseDate("2025-01-01"),
			Account: "Individual",
			Action:  "ELECTRONIC FUNDS TRANSFER RECEIVED",
			Amount:  folio.USD(1000),
		},
		folio.Transaction{
			Date:     folio.MustParseDate("2025-01-02"),
			Account:  "Individual",
			Symbol:   "AAPL",
			Action:   "YOU BOUGHT",
			Quantity: folio.Q(10),
			Amount:   folio.USD(-1000),
			Price:    folio.USD(100),
		},
		folio.Transaction{
			Date:     folio.MustParseDate("2025-02-02"),
			Account:  "Individual",
			Symbol:   "AAPL",
			Action:   "YOU SOLD",
			Quantity: folio.Q(-4),
			Amount:   folio.USD(480),
			Price:    folio.USD(120),
		},
	)
	prices := folio.NewPriceTable()
	prices.Append("AAPL", folio.MustParseDate("2025-01-02"), 100)
	prices.Append("AAPL", folio.MustParseDate("2025-02-02"), 120)

	return folio.NewReport(l, "", prices, folio.NewPolicySet(), folio.MustParseDate("2025-02-02"))
}

func TestSummaryMarkdown(t *testing.T) {
	md := SummaryMarkdown(testReport(t))

	for _, want := range []string{
		"# Portfolio Summary",
		"Current Value",
		"## Performance",
		folio.Lifetime,
		folio.YearToDate,
		"## Capital",
		"Transfers",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("summary missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "error") {
		t.Errorf("template error leaked into output:\n%s", md)
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	md := HoldingsMarkdown(testReport(t))

	for _, want := range []string{"# Holdings", "AAPL", "Avg Cost", "Total unrealized"} {
		if !strings.Contains(md, want) {
			t.Errorf("holdings missing %q:\n%s", want, md)
		}
	}
}

func TestHoldingsMarkdownEmpty(t *testing.T) {
	l := folio.NewLedger()
	l.Append(folio.Transaction{
		Date:    folio.MustParseDate("2025-01-01"),
		Account: "Individual",
		Action:  "ELECTRONIC FUNDS TRANSFER RECEIVED",
		Amount:  folio.USD(100),
	})
	r := folio.NewReport(l, "", folio.NewPriceTable(), folio.NewPolicySet(), folio.MustParseDate("2025-01-01"))

	if md := HoldingsMarkdown(r); !strings.Contains(md, "No open positions") {
		t.Errorf("empty holdings not reported:\n%s", md)
	}
}

func TestGainsMarkdown(t *testing.T) {
	md := GainsMarkdown(testReport(t))

	for _, want := range []string{"# Realized Gains", "AAPL", "Cost Basis", "Total realized"} {
		if !strings.Contains(md, want) {
			t.Errorf("gains missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "(*)") {
		t.Errorf("fully covered sale marked degraded:\n%s", md)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	r := testReport(t)
	md := HistoryMarkdown(Series{Title: "Portfolio Value", Points: r.Values})

	if !strings.Contains(md, "# Portfolio Value") {
		t.Errorf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "2025-01-02") {
		t.Errorf("missing data rows:\n%s", md)
	}
}

func TestTransactions(t *testing.T) {
	l := folio.NewLedger()
	l.Append(folio.Transaction{
		Date:     folio.MustParseDate("2025-01-02"),
		Account:  "Individual",
		Symbol:   "AAPL",
		Action:   "YOU BOUGHT",
		Quantity: folio.Q(10),
		Amount:   folio.USD(-1000),
	})
	var txs []folio.Transaction
	for _, tx := range l.Transactions() {
		txs = append(txs, tx)
	}

	md := Transactions(txs)
	if !strings.Contains(md, "Bought 10 of AAPL for $1,000.00") {
		t.Errorf("unexpected rendering:\n%s", md)
	}
}
