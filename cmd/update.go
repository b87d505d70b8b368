package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/gregorias/fundquotes"
	"github.com/gregorias/fundquotes/bossa"
	"github.com/gregorias/fundquotes/nbp"
	"github.com/gregorias/fundquotes/renderer"
	"github.com/shopspring/decimal"
)

type updateCmd struct {
	fundsOnly bool
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "fetch fund prices from bossa.pl and record them in the ledger"
}
func (*updateCmd) Usage() string {
	return `fq update [-funds-only]

  Downloads the bossa.pl fund price database, matches it against the funds
  declared in the ledger, and records a price entry for every fund whose
  quote is more recent than the ledger's. Currency pairs are updated from
  the NBP exchange-rate API unless -funds-only is given.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.fundsOnly, "funds-only", false, "Only update bossa.pl funds, skip NBP exchange rates")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := renderer.UpdateReport{Date: fundquotes.Today().String()}

	changes, skips, txs, err := bossa.Fetch(ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to update funds from bossa.pl:", err)
		return subcommands.ExitFailure
	}
	ledger.AppendOrUpdate(txs...)
	for _, c := range changes {
		cur := securityCurrency(ledger, c.Ticker)
		report.Changes = append(report.Changes, renderer.PriceChange{
			Ticker: c.Ticker,
			Date:   c.Date.String(),
			Old:    moneyString(c.Old, cur),
			New:    fundquotes.M(c.New, cur).String(),
		})
	}
	for _, s := range skips {
		report.Skipped = append(report.Skipped, renderer.Skipped{Ticker: s.Ticker, Reason: s.Reason})
	}

	if !c.fundsOnly {
		rateChanges, rateSkips, rateTxs, err := nbp.Fetch(ledger)
		if err != nil {
			// Fund updates are already in the ledger; report and keep them.
			fmt.Fprintln(os.Stderr, "Error: failed to update exchange rates from NBP:", err)
		} else {
			ledger.AppendOrUpdate(rateTxs...)
			for _, c := range rateChanges {
				cur := securityCurrency(ledger, c.Ticker)
				report.Changes = append(report.Changes, renderer.PriceChange{
					Ticker: c.Ticker,
					Date:   c.Date.String(),
					Old:    moneyString(c.Old, cur),
					New:    fundquotes.M(c.New, cur).String(),
				})
			}
			for _, s := range rateSkips {
				report.Skipped = append(report.Skipped, renderer.Skipped{Ticker: s.Ticker, Reason: s.Reason})
			}
		}
	}

	if err := SaveLedgerFile(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Update(report))
	return subcommands.ExitSuccess
}

// securityCurrency returns the currency a ticker was declared in, falling
// back to the ledger's reporting currency.
func securityCurrency(ledger *fundquotes.Ledger, ticker string) string {
	if sec := ledger.Security(ticker); sec != nil {
		return sec.Currency()
	}
	return ledger.Currency()
}

// moneyString formats an optional price in the given currency.
func moneyString(d *decimal.Decimal, currency string) string {
	if d == nil {
		return ""
	}
	return fundquotes.M(*d, currency).String()
}
