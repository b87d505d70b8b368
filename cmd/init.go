package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/gregorias/fundquotes"
)

type initCmd struct {
	currency string
	date     string
	memo     string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "initialize the ledger reporting currency" }
func (*initCmd) Usage() string {
	return `fq init [-c <currency>] [-d <date>] [-m <memo>]

  Creates or updates the ledger's init line, which sets the reporting
  currency. Running init on an existing ledger updates the line in place.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "PLN", "Reporting currency of the ledger")
	f.StringVar(&c.date, "d", "", "Init date (YYYY-MM-DD), defaults to today or the first transaction date")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var day fundquotes.Date
	if c.date != "" {
		var err error
		day, err = fundquotes.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Validate(fundquotes.NewInit(day, c.memo, c.currency))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger.AppendOrUpdate(tx)

	if err := SaveLedgerFile(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Initialized ledger %s with currency %s.\n", *ledgerFile, c.currency)
	return subcommands.ExitSuccess
}
