package fundquotes

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
	securities   map[string]Security // index securities by ticker
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		securities:   make(map[string]Security),
	}
}

// Security returns the security declared with this ticker, or nil if unknown.
func (l *Ledger) Security(ticker string) *Security {
	sec, ok := l.securities[ticker]
	if !ok {
		return nil
	}
	return &sec
}

// Currency returns the reporting currency set by the init transaction, or ""
// if the ledger has not been initialized.
func (l *Ledger) Currency() string {
	if len(l.transactions) == 0 {
		return ""
	}
	if init, ok := l.transactions[0].(Init); ok {
		return init.Currency
	}
	return ""
}

// Validate checks a transaction for correctness and applies quick fixes where
// applicable. It returns the validated (and potentially modified) transaction
// or an error detailing any validation failures.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	var err error
	switch v := tx.(type) {
	case Init:
		tx, err = v.Validate(l)
	case Declare:
		tx, err = v.Validate(l)
	case UpdatePrice:
		tx, err = v.Validate(l)
	default:
		return tx, fmt.Errorf("unsupported transaction type for validation: %T %v", tx, tx)
	}
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return tx, nil
}

// Append adds transactions to the ledger and keeps it sorted.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	// process security declarations.
	l.processTx(txs...)
	l.stableSort() // Ensure the ledger remains sorted after appending
}

// AppendOrUpdate adds a transaction to the ledger. If the transaction is an
// UpdatePrice and an entry for the same day already exists, the price maps are
// merged instead of appending a duplicate line. An Init replaces the existing
// init line.
func (l *Ledger) AppendOrUpdate(txs ...Transaction) {
	for _, tx := range txs {
		var replaced bool
		switch newTx := tx.(type) {
		case UpdatePrice:
			for i, existingTx := range l.transactions {
				if oldTx, ok := existingTx.(UpdatePrice); ok && oldTx.When() == newTx.When() {
					// An UpdatePrice for this day already exists. Merge the prices.
					if oldTx.Prices == nil {
						oldTx.Prices = make(map[string]decimal.Decimal)
					}
					for ticker, price := range newTx.Prices {
						if old, existed := oldTx.Prices[ticker]; !existed || !old.Equal(price) {
							log.Printf("%v: update %v price from %s with %s", newTx.Date, ticker, old, price)
							oldTx.Prices[ticker] = price
						}
					}
					l.transactions[i] = oldTx // Update in place.
					replaced = true
					break // Found the right day, no need to check further.
				}
			}
		case Init:
			// The init line may not sit at index 0 in a ledger that is
			// being repaired, so scan for it.
			for i, existingTx := range l.transactions {
				if _, ok := existingTx.(Init); ok {
					l.transactions[i] = newTx
					replaced = true
					break
				}
			}
			if replaced {
				l.stableSort() // the replacement may carry a different date
			}
		}

		if !replaced {
			// If no existing transaction was found and replaced, append the new one.
			l.Append(tx)
			log.Printf("%v: append %q %v", tx.When(), tx.What(), tx)
		}
	}
}

func (l *Ledger) processTx(txs ...Transaction) {
	for _, tx := range txs {
		if v, ok := tx.(Declare); ok {
			sec := NewSecurity(v.ID, v.Ticker, v.Currency, v.Description)
			l.securities[sec.Ticker()] = sec
		}
	}
}

// Transactions returns an iterator that yields each transaction in its
// chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order, except
// that an init line always sorts before other same-day transactions so it ends
// up first in the ledger.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		if c := l.transactions[i].When().Compare(l.transactions[j].When()); c != 0 {
			return c < 0
		}
		_, iInit := l.transactions[i].(Init)
		_, jInit := l.transactions[j].(Init)
		return iInit && !jInit
	})
}

// AllSecurities iterates over securities declared in this ledger, in ticker
// order.
func (l *Ledger) AllSecurities() iter.Seq[Security] {
	return func(yield func(Security) bool) {
		tickers := slices.Collect(maps.Keys(l.securities))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(l.securities[ticker]) {
				return
			}
		}
	}
}

// LatestPrice scans the ledger in reverse and returns the most recent recorded
// price for the given ticker, along with its date. The boolean is false when
// the ledger holds no price for that ticker.
func (l *Ledger) LatestPrice(ticker string) (decimal.Decimal, Date, bool) {
	// Iterate backwards for efficiency, as we want the most recent date.
	for i := len(l.transactions) - 1; i >= 0; i-- {
		if v, ok := l.transactions[i].(UpdatePrice); ok {
			if price, ok := v.Prices[ticker]; ok {
				return price, v.Date, true
			}
		}
	}
	return decimal.Decimal{}, Date{}, false
}

// PriceHistory returns the (date, price) points recorded for the given ticker,
// in chronological order.
func (l *Ledger) PriceHistory(ticker string) iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for _, tx := range l.transactions {
			if v, ok := tx.(UpdatePrice); ok {
				if price, ok := v.Prices[ticker]; ok {
					if !yield(v.Date, price) {
						return
					}
				}
			}
		}
	}
}
