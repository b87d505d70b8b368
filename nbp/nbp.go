// Package nbp fetches PLN exchange rates from the National Bank of Poland
// public API and turns them into ledger price updates for currency-pair
// securities such as "EURPLN".
package nbp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/gregorias/fundquotes"
	"github.com/shopspring/decimal"
)

/*
	{
	    "table": "A",
	    "currency": "euro",
	    "code": "EUR",
	    "rates": [
	        {
	            "no": "168/A/NBP/2026",
	            "effectiveDate": "2026-08-31",
	            "mid": 4.2757
	        }
	    ]
	}
*/
const rateURL = "https://api.nbp.pl/api/exchangerates/rates/a/%s/?format=json"

// Change is one exchange-rate update produced by a fetch run.
type Change struct {
	Date   fundquotes.Date
	Ticker string
	Old    *decimal.Decimal // possibly nil when the ledger had no rate yet
	New    decimal.Decimal
}

// Skip explains why a declared currency pair received no update.
type Skip struct {
	Ticker string
	Reason string
}

// Fetch looks up the ledger's currency-pair securities quoted in PLN and
// fetches their latest mid rate from the NBP table A. The same freshness rule
// as for funds applies: no update when the ledger rate is at least as recent.
func Fetch(ledger *fundquotes.Ledger) ([]Change, []Skip, []fundquotes.Transaction, error) {
	return fetch(ledger, http.DefaultClient)
}

func fetch(ledger *fundquotes.Ledger, client *http.Client) ([]Change, []Skip, []fundquotes.Transaction, error) {
	var changes []Change
	var skips []Skip
	for sec := range ledger.AllSecurities() {
		base, quote, err := sec.ID().CurrencyPair()
		if err != nil {
			continue // not a currency pair
		}
		if quote != "PLN" {
			skips = append(skips, Skip{
				Ticker: sec.Ticker(),
				Reason: fmt.Sprintf("NBP only quotes against PLN, pair is %s", sec.ID()),
			})
			continue
		}

		rate, day, err := latestRate(client, base)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not fetch %s rate: %w", sec.ID(), err)
		}

		c := Change{Date: day, Ticker: sec.Ticker(), New: rate}
		if last, on, ok := ledger.LatestPrice(sec.Ticker()); ok {
			if !on.Before(day) {
				skips = append(skips, Skip{
					Ticker: sec.Ticker(),
					Reason: fmt.Sprintf("ledger rate of %s is not older than the %s quote", on, day),
				})
				continue
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
			return nil, nil, nil, err
		}
		transactions = append(transactions, tx)
	}
	return changes, skips, transactions, nil
}

// latestRate fetches the latest published mid rate for one currency code.
func latestRate(client *http.Client, code string) (decimal.Decimal, fundquotes.Date, error) {
	addr := fmt.Sprintf(rateURL, strings.ToLower(code))
	data, err := wget(client, addr)
	if err != nil {
		return decimal.Decimal{}, fundquotes.Date{}, fmt.Errorf("error in wget %q: %w", code, err)
	}
	return parseRate(data)
}

// parseRate extracts the mid rate and its effective date from an NBP
// exchangerates payload.
func parseRate(data []byte) (decimal.Decimal, fundquotes.Date, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return decimal.Decimal{}, fundquotes.Date{}, fmt.Errorf("could not decode NBP rate json: %w", err)
	}

	jval, err := jsonpath.Get("$.rates[0].mid", jobj)
	if err != nil {
		return decimal.Decimal{}, fundquotes.Date{}, fmt.Errorf("error parsing NBP rate: %w", err)
	}
	mid, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, fundquotes.Date{}, fmt.Errorf("error parsing NBP rate: mid is not a number: %v", jval)
	}

	jval, err = jsonpath.Get("$.rates[0].effectiveDate", jobj)
	if err != nil {
		return decimal.Decimal{}, fundquotes.Date{}, fmt.Errorf("error parsing NBP rate date: %w", err)
	}
	str, ok := jval.(string)
	if !ok {
		return decimal.Decimal{}, fundquotes.Date{}, fmt.Errorf("error parsing NBP rate date: not a string: %v", jval)
	}
	day, err := fundquotes.ParseDate(str)
	if err != nil {
		return decimal.Decimal{}, fundquotes.Date{}, err
	}

	return decimal.NewFromFloat(mid), day, nil
}

// wget performs an HTTP GET request and returns the raw response body.
func wget(client *http.Client, addr string) ([]byte, error) {
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
