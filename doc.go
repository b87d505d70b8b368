// Package fundquotes keeps Polish investment-fund unit prices in a small
// personal-finance ledger file.
//
// The ledger is a JSONL file where each line is a dated command: "init" sets
// the reporting currency, "declare" maps a ledger ticker to a fund or
// currency pair, and "update-price" records unit prices for a day. Prices
// are fetched from bossa.pl's public fund database and, for currency pairs,
// from the National Bank of Poland API.
package fundquotes
