package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rvail/folio"
	"github.com/rvail/folio/renderer"
)

type holdingsCmd struct {
	date    string
	account string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display current positions and their market value" }
func (*holdingsCmd) Usage() string {
	return `fv holdings [-d <date>] [-account <name>]

  Displays the open positions with FIFO cost, latest price, market value
  and unrealized profit.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the holdings.")
	f.StringVar(&c.account, "account", "", "Account to report on. Defaults to the combined portfolio.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := Report(c.account, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingsMarkdown(report))
	return subcommands.ExitSuccess
}
