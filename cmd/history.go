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

type historyCmd struct {
	date    string
	account string
	series  string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily value or net invested series" }
func (*historyCmd) Usage() string {
	return `fv history [-d <date>] [-account <name>] [-series value|invested]

  Displays the daily portfolio value series, or the cumulative net
  invested capital series.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "End date for the series.")
	f.StringVar(&c.account, "account", "", "Account to report on. Defaults to the combined portfolio.")
	f.StringVar(&c.series, "series", "value", "Series to display (value, invested).")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var s renderer.Series
	switch c.series {
	case "value":
		s = renderer.Series{Title: "Portfolio Value", Points: report.Values}
	case "invested":
		s = renderer.Series{Title: "Net Invested", Points: report.Invested}
	default:
		fmt.Fprintf(os.Stderr, "Unknown series %q, want value or invested\n", c.series)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.HistoryMarkdown(s))
	return subcommands.ExitSuccess
}
