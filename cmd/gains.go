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

type gainsCmd struct {
	date    string
	account string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gain analysis per sale" }
func (*gainsCmd) Usage() string {
	return `fv gains [-d <date>] [-account <name>]

  Lists every realized sale with its FIFO cost basis, proceeds and profit.
  Sales exceeding the recorded acquisition history are marked.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "End date for the analysis.")
	f.StringVar(&c.account, "account", "", "Account to report on. Defaults to the combined portfolio.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
