package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests. It must run before flag
// parsing; when invoked by the shell it answers and exits.
func Complete() {
	dates := predict.Nothing
	account := predict.Nothing
	reportFlags := map[string]complete.Predictor{
		"d":       dates,
		"account": account,
	}

	cmd := &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger":     predict.Files("*.jsonl"),
			"retirement": account,
			"tickers":    predict.Files("*.json"),
			"manual":     predict.Files("*.json"),
			"offline":    predict.Nothing,
			"v":          predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"summary":  {Flags: reportFlags},
			"holdings": {Flags: reportFlags},
			"gains":    {Flags: reportFlags},
			"history": {Flags: map[string]complete.Predictor{
				"d":       dates,
				"account": account,
				"series":  predict.Set{"value", "invested"},
			}},
			"tx": {Flags: map[string]complete.Predictor{
				"account":  account,
				"symbol":   predict.Nothing,
				"category": predict.Set{"deposit", "withdrawal", "buy", "sell", "distribution", "dividend", "reinvestment", "tax", "fee", "other"},
			}},
			"report": {Flags: map[string]complete.Predictor{
				"d":       dates,
				"account": account,
				"o":       predict.Files("*.json"),
			}},
			"fmt":        {},
			"topic":      {Args: predict.Set{"readme", "ledger", "accounts", "prices", "gains", "performance", "*"}},
			"assist":     {},
			"completion": {},
		},
	}
	cmd.Complete("fv")
}

// completionCmd explains how to enable shell completion.
type completionCmd struct{}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "print shell completion setup instructions" }
func (*completionCmd) Usage() string {
	return `fv completion

  Prints the commands to enable shell completion for fv.
`
}

func (*completionCmd) SetFlags(f *flag.FlagSet) {}

func (c *completionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("# bash: add to ~/.bashrc")
	fmt.Println("complete -C fv fv")
	fmt.Println("# zsh: add to ~/.zshrc")
	fmt.Println("autoload -U +X bashcompinit && bashcompinit")
	fmt.Println("complete -C fv fv")
	return subcommands.ExitSuccess
}
