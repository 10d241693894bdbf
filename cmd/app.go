// Package cmd implements the fv CLI subcommands.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rvail/folio"
)

// Commands is the registry a main package iterates over.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&holdingsCmd{},
	&gainsCmd{},
	&historyCmd{},
	&txCmd{},
	&reportCmd{},
	&fmtCmd{},
	&topicCmd{},
	&assistCmd{},
	&completionCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for the app-level flags.

var ledgerFile = flag.String("ledger", "transactions.jsonl", "Path to the ledger file (JSONL format)")
var retirement = flag.String("retirement", "", "Comma-separated account names with retirement-plan semantics")
var tickersFile = flag.String("tickers", "", "Path to a JSON file remapping ledger symbols to quote tickers")
var manualFile = flag.String("manual", "", "Path to a JSON file of manual prices for unquotable symbols")
var offline = flag.Bool("offline", false, "Skip market data, value from ledger prices only")
var Verbose = flag.Bool("v", false, "Enable verbose logging")

// DecodeLedger reads the app ledger file.
func DecodeLedger() (*folio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return folio.DecodeLedger(f)
}

// Policies returns the account policy set from the -retirement flag.
func Policies() folio.PolicySet {
	var accounts []string
	for _, a := range strings.Split(*retirement, ",") {
		if a = strings.TrimSpace(a); a != "" {
			accounts = append(accounts, a)
		}
	}
	return folio.NewPolicySet(accounts...)
}

// FetchPrices builds the merged price table for the ledger, honoring the
// -tickers, -manual and -offline flags.
func FetchPrices(l *folio.Ledger) (*folio.PriceTable, error) {
	remap := folio.TickerMap{}
	if *tickersFile != "" {
		if err := readJSONFile(*tickersFile, &remap); err != nil {
			return nil, err
		}
	}
	manual := map[string]float64{}
	if *manualFile != "" {
		if err := readJSONFile(*manualFile, &manual); err != nil {
			return nil, err
		}
	}

	var src folio.QuoteSource
	if !*offline {
		src = folio.NewChartAPI("")
	}
	return folio.FetchPrices(src, l, remap, manual), nil
}

func readJSONFile(path string, data any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", path, err)
	}
	if err := json.Unmarshal(content, data); err != nil {
		return fmt.Errorf("cannot parse %q: %w", path, err)
	}
	return nil
}

// Report composes the full report for one account view, fetching prices.
func Report(account string, asOf folio.Date) (*folio.Report, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	prices, err := FetchPrices(ledger)
	if err != nil {
		return nil, err
	}
	return folio.NewReport(ledger, account, prices, Policies(), asOf), nil
}

// printMarkdown renders markdown to the terminal. When rendering fails
// (no TTY, unsupported terminal) the raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// SetupLogging silences the default logger unless -v is set.
func SetupLogging() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}
