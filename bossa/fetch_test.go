package bossa

import (
	"strings"
	"testing"
	"time"

	"github.com/gregorias/fundquotes"
	"github.com/shopspring/decimal"
)

const staleFixture = `<TICKER>,<DTYYYYMMDD>,<OPEN>,<HIGH>,<LOW>,<CLOSE>,<VOL>
STALE,20250820,55.10,55.10,55.10,55.10,0
`

func matchLedger(t *testing.T) *fundquotes.Ledger {
	t.Helper()
	ledger := fundquotes.NewLedger()
	day := fundquotes.NewDate(2025, time.January, 1)
	ledger.Append(
		fundquotes.NewInit(day, "", "PLN"),
		fundquotes.NewDeclare(day, "", "UNIKOR", BossaID("UniKorona Akcje"), "PLN", ""),
		fundquotes.NewDeclare(day, "", "EURF", BossaID("Euro Fund"), "EUR", ""),
		fundquotes.NewDeclare(day, "", "GHOST", BossaID("Ghost Fund"), "PLN", ""),
		fundquotes.NewDeclare(day, "", "STALE", BossaID("Stale Fund"), "PLN", ""),
		fundquotes.NewDeclare(day, "", "EUR", "EURPLN", "PLN", ""),
		fundquotes.NewUpdatePrice(fundquotes.MustParseDate("2025-08-27"), "UNIKOR", decimal.RequireFromString("182.00")),
		fundquotes.NewUpdatePrice(fundquotes.MustParseDate("2025-08-22"), "STALE", decimal.RequireFromString("55.10")),
	)
	return ledger
}

func matchArchive(t *testing.T) *Archive {
	t.Helper()
	return testArchive(t,
		map[string]Entry{
			"UniKorona Akcje": {Name: "UniKorona Akcje", File: "ABC001.mst", Updated: fundquotes.MustParseDate("2025-08-28")},
			"Stale Fund":      {Name: "Stale Fund", File: "ABC002.mst", Updated: fundquotes.MustParseDate("2025-08-20")},
		},
		map[string]string{
			"ABC001.mst": mstFixture,
			"ABC002.mst": staleFixture,
		},
	)
}

func TestMatch(t *testing.T) {
	ledger := matchLedger(t)

	changes, skips, err := match(ledger, matchArchive(t))
	if err != nil {
		t.Fatalf("match() error: %v", err)
	}

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1: %+v", len(changes), changes)
	}
	c := changes[0]
	if c.Ticker != "UNIKOR" {
		t.Errorf("change ticker = %q, want UNIKOR", c.Ticker)
	}
	if want := fundquotes.MustParseDate("2025-08-28"); c.Date != want {
		t.Errorf("change date = %v, want %v (the quote date, not today)", c.Date, want)
	}
	if !c.New.Equal(decimal.RequireFromString("182.69")) {
		t.Errorf("new price = %v, want 182.69", c.New)
	}
	if c.Old == nil || !c.Old.Equal(decimal.RequireFromString("182.00")) {
		t.Errorf("old price = %v, want 182.00", c.Old)
	}

	wantSkips := map[string]string{
		"EURF":  "denominated in PLN",
		"GHOST": "not available on bossa.pl",
		"STALE": "not older than",
	}
	if len(skips) != len(wantSkips) {
		t.Fatalf("got %d skips, want %d: %+v", len(skips), len(wantSkips), skips)
	}
	for _, s := range skips {
		want, ok := wantSkips[s.Ticker]
		if !ok {
			t.Errorf("unexpected skip for %q: %s", s.Ticker, s.Reason)
			continue
		}
		if !strings.Contains(s.Reason, want) {
			t.Errorf("skip reason for %q = %q, want it to contain %q", s.Ticker, s.Reason, want)
		}
	}
}

func TestMatchIgnoresNonBossaSecurities(t *testing.T) {
	ledger := matchLedger(t)

	changes, skips, err := match(ledger, matchArchive(t))
	if err != nil {
		t.Fatalf("match() error: %v", err)
	}
	for _, c := range changes {
		if c.Ticker == "EUR" {
			t.Error("currency pair EUR should not receive a bossa update")
		}
	}
	for _, s := range skips {
		if s.Ticker == "EUR" {
			t.Error("currency pair EUR should not be reported as skipped")
		}
	}
}

func TestMergeChanges(t *testing.T) {
	day := fundquotes.NewDate(2025, time.January, 1)
	ledger := fundquotes.NewLedger()
	ledger.Append(
		fundquotes.NewDeclare(day, "", "AFUND", BossaID("A Fund"), "PLN", ""),
		fundquotes.NewDeclare(day, "", "BFUND", BossaID("B Fund"), "PLN", ""),
	)

	aug27 := fundquotes.MustParseDate("2025-08-27")
	aug28 := fundquotes.MustParseDate("2025-08-28")
	changes := []Change{
		{Date: aug27, Ticker: "AFUND", New: decimal.RequireFromString("10.00")},
		{Date: aug28, Ticker: "AFUND", New: decimal.RequireFromString("10.50")},
		{Date: aug28, Ticker: "BFUND", New: decimal.RequireFromString("20.00")},
	}

	txs, err := mergeChanges(ledger, changes)
	if err != nil {
		t.Fatalf("mergeChanges() error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2 (one per day)", len(txs))
	}

	first, ok := txs[0].(fundquotes.UpdatePrice)
	if !ok || first.When() != aug27 {
		t.Fatalf("transactions not in date order: %v", txs)
	}
	second := txs[1].(fundquotes.UpdatePrice)
	if len(second.Prices) != 2 {
		t.Errorf("same-day changes not merged: %v", second.Prices)
	}
}

func TestMergeChangesRejectsUndeclared(t *testing.T) {
	ledger := fundquotes.NewLedger()
	changes := []Change{
		{Date: fundquotes.MustParseDate("2025-08-28"), Ticker: "GHOST", New: decimal.RequireFromString("1.00")},
	}
	if _, err := mergeChanges(ledger, changes); err == nil {
		t.Error("mergeChanges() accepted a change for an undeclared security")
	}
}
