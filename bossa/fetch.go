package bossa

import (
	"fmt"
	"log"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/gregorias/fundquotes"
	"github.com/shopspring/decimal"
)

// Change is one price update produced by a fetch run.
type Change struct {
	Date   fundquotes.Date
	Ticker string
	Old    *decimal.Decimal // possibly nil when the ledger had no price yet
	New    decimal.Decimal
}

// Skip explains why a declared fund received no update.
type Skip struct {
	Ticker string
	Name   string
	Reason string
}

// Fetch downloads the bossa.pl fund database and matches it against the funds
// declared in the ledger. It returns the price changes, the funds skipped with
// their reasons, and ready-to-append transactions carrying the changes.
//
// A declared fund is updated when it is quoted in PLN, its name appears in the
// bossa listing, and the quote is more recent than the latest price already in
// the ledger.
func Fetch(ledger *fundquotes.Ledger) ([]Change, []Skip, []fundquotes.Transaction, error) {
	return fetch(ledger, newDailyCachingClient())
}

func fetch(ledger *fundquotes.Ledger, client *http.Client) ([]Change, []Skip, []fundquotes.Transaction, error) {
	archive, err := Open(client)
	if err != nil {
		return nil, nil, nil, err
	}
	defer archive.Close()

	changes, skips, err := match(ledger, archive)
	if err != nil {
		return nil, nil, nil, err
	}
	transactions, err := mergeChanges(ledger, changes)
	if err != nil {
		return nil, nil, nil, err
	}
	return changes, skips, transactions, nil
}

// match walks the declared securities and applies the update and skip rules
// against the fund archive.
func match(ledger *fundquotes.Ledger, archive *Archive) ([]Change, []Skip, error) {
	var changes []Change
	var skips []Skip
	for sec := range ledger.AllSecurities() {
		name, ok := BossaName(sec.ID())
		if !ok {
			continue // not a bossa fund
		}

		if sec.Currency() != "PLN" {
			skips = append(skips, Skip{
				Ticker: sec.Ticker(),
				Name:   name,
				Reason: fmt.Sprintf("quoted in %s, bossa.pl funds are denominated in PLN", sec.Currency()),
			})
			continue
		}

		quote, listed, err := archive.Quote(Normalize(name))
		if err != nil {
			return nil, nil, err
		}
		if !listed {
			skips = append(skips, Skip{
				Ticker: sec.Ticker(),
				Name:   name,
				Reason: "not available on bossa.pl",
			})
			continue
		}

		c := Change{Date: quote.Date, Ticker: sec.Ticker(), New: quote.Price}
		if last, on, ok := ledger.LatestPrice(sec.Ticker()); ok {
			if !on.Before(quote.Date) {
				skips = append(skips, Skip{
					Ticker: sec.Ticker(),
					Name:   name,
					Reason: fmt.Sprintf("ledger price of %s is not older than the %s quote", on, quote.Date),
				})
				continue
			}
			if last.Equal(quote.Price) {
				log.Printf("%s: price %s unchanged since %s", sec.Ticker(), quote.Price, on)
			}
			c.Old = &last
		}
		changes = append(changes, c)
	}

	slices.SortFunc(changes, func(a, b Change) int {
		if d := a.Date.Compare(b.Date); d != 0 {
			return d
		}
		return strings.Compare(a.Ticker, b.Ticker)
	})
	slices.SortFunc(skips, func(a, b Skip) int {
		return strings.Compare(a.Ticker, b.Ticker)
	})

	return changes, skips, nil
}

// mergeChanges groups changes into one UpdatePrice transaction per day and
// validates them against the ledger.
func mergeChanges(ledger *fundquotes.Ledger, changes []Change) ([]fundquotes.Transaction, error) {
	m := make(map[fundquotes.Date]fundquotes.UpdatePrice)
	for _, c := range changes {
		if up, ok := m[c.Date]; ok {
			up.Prices[c.Ticker] = c.New
		} else {
			m[c.Date] = fundquotes.NewUpdatePrice(c.Date, c.Ticker, c.New)
		}
	}

	updates := slices.Collect(maps.Values(m))
	slices.SortFunc(updates, func(a, b fundquotes.UpdatePrice) int {
		return a.When().Compare(b.When())
	})

	transactions := make([]fundquotes.Transaction, 0, len(updates))
	for _, upd := range updates {
		tx, err := ledger.Validate(upd)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
