package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/gregorias/fundquotes"
	"github.com/gregorias/fundquotes/renderer"
)

type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "show the recorded price history of a security" }
func (*logCmd) Usage() string {
	return `fq log <ticker>

  Prints all prices recorded in the ledger for the given ticker, in
  chronological order.
`
}

func (*logCmd) SetFlags(f *flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker argument is expected.")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	sec := ledger.Security(ticker)
	if sec == nil {
		fmt.Fprintf(os.Stderr, "Error: security %q not declared in ledger.\n", ticker)
		return subcommands.ExitFailure
	}

	history := renderer.History{
		Ticker: sec.Ticker(),
		Name:   sec.Description(),
	}
	for day, price := range ledger.PriceHistory(ticker) {
		history.Points = append(history.Points, renderer.PricePoint{
			Date:  day.String(),
			Price: fundquotes.M(price, sec.Currency()).String(),
		})
	}

	printMarkdown(renderer.RenderHistory(history))
	return subcommands.ExitSuccess
}
