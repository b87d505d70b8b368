package bossa

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gregorias/fundquotes"
)

const listURL = "https://bossa.pl/pub/fundinwest/mstock/mstfun.lst"

// Entry describes one fund in the mstfun.lst listing.
type Entry struct {
	Name    string          // the fund's official name
	File    string          // the quote file inside mstfun.zip
	Updated fundquotes.Date // last update of the quote file
}

// A listing line looks like:
//
//	2017-09-29 12:01        12441      299 ABC001.mst UniKorona Akcje
//
// date, time, size, records, in-zip filename, then the fund name which may
// itself contain spaces.
var listLine = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+\S+\s+\S+\s+\S+\s+(\S+)\s+(\S.*\S)\s*$`)

// parseList extracts the fund entries from the raw mstfun.lst payload,
// keyed by normalized fund name. The first 3 lines are a header and the last
// 2 lines a trailer; everything in between must match the line format.
func parseList(data []byte) (map[string]Entry, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	// drop trailing blank lines before cutting the trailer
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 6 {
		return nil, fmt.Errorf("fund listing is too short: %d lines", len(lines))
	}

	funds := make(map[string]Entry)
	for _, line := range lines[3 : len(lines)-2] {
		m := listLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("could not extract fund information from listing line %q", line)
		}
		updated, err := fundquotes.ParseDate(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid date in listing line %q: %w", line, err)
		}
		funds[Normalize(m[3])] = Entry{Name: m[3], File: m[2], Updated: updated}
	}
	return funds, nil
}

// fetchList downloads and parses the fund listing.
func fetchList(client *http.Client) (map[string]Entry, error) {
	data, err := wget(client, listURL)
	if err != nil {
		return nil, fmt.Errorf("could not download the list of available funds: %w", err)
	}
	return parseList(data)
}
