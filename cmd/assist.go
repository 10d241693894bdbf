package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rvail/folio"
	"github.com/rvail/folio/agent"
	"github.com/rvail/folio/renderer"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fv assist [initial question]

  Starts an interactive session with the AI assistant. The assistant
  answers from the portfolio reports and can research market news.
`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	prices, err := FetchPrices(ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	policies := Policies()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(reportTools(ledger, prices, policies))
	researcher := agent.NewResearcher()
	a := agent.New(os.Stdout, os.Stdin, analyst, researcher)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// reportTools exposes the computed reports to the analyst model. Each tool
// takes an optional account name; empty means the combined portfolio.
func reportTools(ledger *folio.Ledger, prices *folio.PriceTable, policies folio.PolicySet) []agent.Function {
	accountParam := map[string]string{
		"account": "Account name, empty for the combined portfolio.",
	}
	report := func(args map[string]any) *folio.Report {
		account, _ := args["account"].(string)
		return folio.NewReport(ledger, account, prices, policies, folio.Today())
	}

	return []agent.Function{
		&agent.Tool{
			Name:        "portfolio_summary",
			Description: "Current value, net invested capital, capital breakdown and XIRR/TWR performance windows.",
			Params:      accountParam,
			Run: func(_ context.Context, args map[string]any) (string, error) {
				return renderer.SummaryMarkdown(report(args)), nil
			},
		},
		&agent.Tool{
			Name:        "portfolio_holdings",
			Description: "Open positions with cost basis, latest price, market value and unrealized profit.",
			Params:      accountParam,
			Run: func(_ context.Context, args map[string]any) (string, error) {
				return renderer.HoldingsMarkdown(report(args)), nil
			},
		},
		&agent.Tool{
			Name:        "realized_gains",
			Description: "Every realized sale with its FIFO cost basis, proceeds and profit.",
			Params:      accountParam,
			Run: func(_ context.Context, args map[string]any) (string, error) {
				return renderer.GainsMarkdown(report(args)), nil
			},
		},
	}
}
