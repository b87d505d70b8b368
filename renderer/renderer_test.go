package renderer

import (
	"strings"
	"testing"
)

func TestUpdate(t *testing.T) {
	report := UpdateReport{
		Date: "2025-08-29",
		Changes: []PriceChange{
			{Ticker: "UNIKOR", Date: "2025-08-28", Old: "182", New: "182.69"},
			{Ticker: "EUR", Date: "2025-08-28", New: "4.26"},
		},
		Skipped: []Skipped{
			{Ticker: "GHOST", Reason: "not available on bossa.pl"},
		},
	}

	got := Update(report)

	for _, want := range []string{
		"# Price update on 2025-08-29",
		"| UNIKOR | 2025-08-28 | 182 | 182.69 |",
		"| EUR | 2025-08-28 | n/a | 4.26 |",
		"## Skipped",
		"- **GHOST**: not available on bossa.pl",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Update() output is missing %q:\n%s", want, got)
		}
	}
}

func TestUpdateEmpty(t *testing.T) {
	got := Update(UpdateReport{Date: "2025-08-29"})
	if !strings.Contains(got, "Nothing to update.") {
		t.Errorf("Update() of an empty report should say so:\n%s", got)
	}
	if strings.Contains(got, "## Skipped") {
		t.Errorf("Update() without skips should not have a Skipped section:\n%s", got)
	}
}

func TestRenderHistory(t *testing.T) {
	h := History{
		Ticker: "UNIKOR",
		Name:   "UniKorona Akcje",
		Points: []PricePoint{
			{Date: "2025-08-27", Price: "182,00 zł"},
			{Date: "2025-08-28", Price: "182,69 zł"},
		},
	}

	got := RenderHistory(h)

	for _, want := range []string{
		"# UNIKOR (UniKorona Akcje)",
		"| Date | Price |",
		"| 2025-08-27 | 182,00 zł |",
		"| 2025-08-28 | 182,69 zł |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderHistory() output is missing %q:\n%s", want, got)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	got := RenderHistory(History{Ticker: "UNIKOR"})
	if !strings.Contains(got, "No prices recorded.") {
		t.Errorf("RenderHistory() of an empty history should say so:\n%s", got)
	}
	if strings.Contains(got, "(") {
		t.Errorf("RenderHistory() without a name should not print parentheses:\n%s", got)
	}
}
