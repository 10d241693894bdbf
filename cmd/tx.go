package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rvail/folio"
	"github.com/rvail/folio/renderer"
)

type txCmd struct {
	account  string
	symbol   string
	category string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list ledger transactions" }
func (*txCmd) Usage() string {
	return `fv tx [-account <name>] [-symbol <symbol>] [-category <category>]

  Lists the classified transactions in chronological order, optionally
  filtered by account, symbol or category.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Only transactions of this account.")
	f.StringVar(&c.symbol, "symbol", "", "Only transactions on this symbol.")
	f.StringVar(&c.category, "category", "", "Only transactions of this category (deposit, buy, sell, ...).")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger = ledger.View(c.account)

	var filters []func(folio.Transaction) bool
	if c.symbol != "" {
		filters = append(filters, folio.BySymbol(c.symbol))
	}
	if c.category != "" {
		category, ok := parseCategory(c.category)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown category %q\n", c.category)
			return subcommands.ExitUsageError
		}
		filters = append(filters, folio.ByCategory(category))
	}
	if len(filters) > 1 {
		// filters are OR'ed by the ledger; combine into a single AND.
		all := filters
		filters = []func(folio.Transaction) bool{func(tx folio.Transaction) bool {
			for _, accept := range all {
				if !accept(tx) {
					return false
				}
			}
			return true
		}}
	}

	var txs []folio.Transaction
	for _, tx := range ledger.Transactions(filters...) {
		txs = append(txs, tx)
	}

	printMarkdown(renderer.Transactions(txs))
	return subcommands.ExitSuccess
}

func parseCategory(s string) (folio.Category, bool) {
	categories := []folio.Category{
		folio.Other, folio.Deposit, folio.Withdrawal, folio.Buy, folio.Sell,
		folio.Distribution, folio.Dividend, folio.Reinvestment, folio.Tax, folio.Fee,
	}
	for _, c := range categories {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return folio.Other, false
}
