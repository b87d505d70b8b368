package bossa

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/gregorias/fundquotes"
	"github.com/shopspring/decimal"
)

const zipURL = "https://bossa.pl/pub/fundinwest/mstock/mstfun.zip"

// Quote is the latest known unit price of a fund.
type Quote struct {
	Price decimal.Decimal
	Date  fundquotes.Date
}

// Archive is an accessor to the bossa.pl fund price database: the fund
// listing plus the downloaded zip of per-fund quote files.
type Archive struct {
	funds map[string]Entry // keyed by normalized fund name
	zip   *zip.ReadCloser
	path  string // the spooled zip file, removed on Close
}

// Open downloads the fund listing and the quote archive.
// The caller must Close the returned Archive.
func Open(client *http.Client) (*Archive, error) {
	funds, err := fetchList(client)
	if err != nil {
		return nil, err
	}

	path, err := wgetFile(client, zipURL, "mstfun-*.zip")
	if err != nil {
		return nil, fmt.Errorf("could not download the fund quote archive: %w", err)
	}
	z, err := zip.OpenReader(path)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("could not open the fund quote archive: %w", err)
	}
	return &Archive{funds: funds, zip: z, path: path}, nil
}

// Close releases the archive and removes the spooled zip file.
func (a *Archive) Close() error {
	err := a.zip.Close()
	if rmErr := os.Remove(a.path); err == nil {
		err = rmErr
	}
	return err
}

// Has reports whether the archive lists a fund under the given normalized name.
func (a *Archive) Has(name string) bool {
	_, ok := a.funds[name]
	return ok
}

// mstRow maps the columns of interest in a metastock quote file. Further
// columns (<OPEN>, <HIGH>, <LOW>, <VOL>) are ignored.
type mstRow struct {
	Date  string `csv:"<DTYYYYMMDD>"`
	Close string `csv:"<CLOSE>"`
}

// Quote returns the latest quote for the fund under the given normalized
// name. The boolean is false when the fund is not listed on bossa.pl.
func (a *Archive) Quote(name string) (Quote, bool, error) {
	entry, ok := a.funds[name]
	if !ok {
		return Quote{}, false, nil
	}

	f, err := a.zip.Open(entry.File)
	if err != nil {
		return Quote{}, true, fmt.Errorf("quote file %q for fund %q is missing from the archive: %w", entry.File, entry.Name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Quote{}, true, fmt.Errorf("could not read quote file %q: %w", entry.File, err)
	}

	quote, err := lastQuote(data)
	if err != nil {
		return Quote{}, true, fmt.Errorf("fund %q: %w", entry.Name, err)
	}
	return quote, true, nil
}

// lastQuote parses a metastock CSV payload and returns the quote of its last
// row, which is the most recent one.
func lastQuote(data []byte) (Quote, error) {
	var rows []mstRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return Quote{}, fmt.Errorf("could not parse quote file: %w", err)
	}
	if len(rows) == 0 {
		return Quote{}, fmt.Errorf("quote file has no rows")
	}

	last := rows[len(rows)-1]
	price, err := decimal.NewFromString(last.Close)
	if err != nil {
		return Quote{}, fmt.Errorf("invalid close price %q: %w", last.Close, err)
	}
	on, err := time.Parse("20060102", last.Date)
	if err != nil {
		return Quote{}, fmt.Errorf("invalid quote date %q: %w", last.Date, err)
	}
	return Quote{Price: price, Date: fundquotes.NewDate(on.Date())}, nil
}
