package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/gregorias/fundquotes"
)

type declareCmd struct {
	id          string
	currency    string
	description string
	date        string
	memo        string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare a fund or currency pair for use within the ledger" }
func (*declareCmd) Usage() string {
	return `fq declare -id <security-id> -c <currency> [-desc <description>] [-d <date>] [-m <memo>] <ticker>

  Declares a security, creating a mapping from a ledger-internal ticker to a
  globally unique security ID and its currency. The ID binds the security to
  a price source: 'Bossa-<official fund name>' for bossa.pl funds, or a
  six-letter pair like 'EURPLN' for NBP exchange rates.

Usage Examples:
$ fq declare -id 'Bossa-UniKorona Akcje' -c PLN UNIKOR
$ fq declare -id EURPLN -c PLN EURPLN
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Full, unique security ID (e.g., 'Bossa-UniKorona Akcje')")
	f.StringVar(&c.currency, "c", "PLN", "The currency the security is quoted in")
	f.StringVar(&c.description, "desc", "", "An optional description for the security")
	f.StringVar(&c.date, "d", fundquotes.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker argument is expected.")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: the -id flag is required.")
		return subcommands.ExitUsageError
	}

	day, err := fundquotes.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Validate(fundquotes.NewDeclare(day, c.memo, ticker, fundquotes.ID(c.id), c.currency, c.description))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return appendTransaction(tx)
}
