package cmd

import (
	"testing"
	"time"

	"github.com/gregorias/fundquotes"
	"github.com/shopspring/decimal"
)

func TestMoneyString(t *testing.T) {
	if got := moneyString(nil, "PLN"); got != "" {
		t.Errorf("moneyString(nil) = %q, want empty", got)
	}

	price := decimal.RequireFromString("182.69")
	if got, want := moneyString(&price, "PLN"), "182,69 zł"; got != want {
		t.Errorf("moneyString() = %q, want %q", got, want)
	}

	rate := decimal.RequireFromString("4.26")
	if got, want := moneyString(&rate, "PLN"), "4,26 zł"; got != want {
		t.Errorf("moneyString() = %q, want %q", got, want)
	}
}

func TestSecurityCurrency(t *testing.T) {
	day := fundquotes.NewDate(2025, time.January, 1)
	ledger := fundquotes.NewLedger()
	ledger.Append(
		fundquotes.NewInit(day, "", "PLN"),
		fundquotes.NewDeclare(day, "", "EURF", "Bossa-Euro Fund", "EUR", ""),
	)

	if got := securityCurrency(ledger, "EURF"); got != "EUR" {
		t.Errorf("securityCurrency(EURF) = %q, want EUR", got)
	}
	// Undeclared tickers fall back to the reporting currency.
	if got := securityCurrency(ledger, "GHOST"); got != "PLN" {
		t.Errorf("securityCurrency(GHOST) = %q, want PLN", got)
	}
}
