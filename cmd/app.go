// Package cmd implements the CLI application that maintains the fund price
// ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/gregorias/fundquotes"
)

// Commands lists the subcommands of the application.
// A main package registers them on a subcommands.Commander.
var Commands = []subcommands.Command{
	&initCmd{},
	&declareCmd{},
	&updateCmd{},
	&logCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "funds.jsonl", "Path to the ledger file (JSONL format)")

// DecodeLedgerFile loads the ledger from the app ledger file.
// A missing file yields an empty ledger with a warning.
func DecodeLedgerFile() (*fundquotes.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger file %q does not exist, using an empty ledger instead", *ledgerFile)
		return fundquotes.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := fundquotes.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", *ledgerFile, err)
	}
	return ledger, nil
}

// SaveLedgerFile rewrites the app ledger file in canonical form.
// The write goes through a temporary file in the same directory so a failed
// encode never truncates the ledger.
func SaveLedgerFile(ledger *fundquotes.Ledger) error {
	dir := filepath.Dir(*ledgerFile)
	tmp, err := os.CreateTemp(dir, filepath.Base(*ledgerFile)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary ledger file: %w", err)
	}

	if err := fundquotes.EncodeLedger(tmp, ledger); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), *ledgerFile)
}

// appendTransaction appends a single transaction to the app ledger file.
func appendTransaction(tx fundquotes.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := fundquotes.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}
