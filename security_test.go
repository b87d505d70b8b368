package fundquotes

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "EURPLN"},
		{in: "Bossa-UniKorona Akcje"},
		{in: "", wantErr: true},
		{in: " EURPLN", wantErr: true},
		{in: "EURPLN ", wantErr: true},
		{in: "EUR\tPLN", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != ID(tt.in) {
			t.Errorf("ParseID(%q) = %q", tt.in, got)
		}
	}
}

func TestCurrencyPair(t *testing.T) {
	tests := []struct {
		id        ID
		base      string
		quote     string
		wantError bool
	}{
		{id: "EURPLN", base: "EUR", quote: "PLN"},
		{id: "USDPLN", base: "USD", quote: "PLN"},
		{id: "eurpln", wantError: true},
		{id: "EURPL", wantError: true},
		{id: "EURPLNX", wantError: true},
		{id: "Bossa-UniKorona Akcje", wantError: true},
	}

	for _, tt := range tests {
		base, quote, err := tt.id.CurrencyPair()
		if (err != nil) != tt.wantError {
			t.Errorf("CurrencyPair(%q) error = %v, wantError %v", tt.id, err, tt.wantError)
			continue
		}
		if err == nil && (base != tt.base || quote != tt.quote) {
			t.Errorf("CurrencyPair(%q) = %q, %q, want %q, %q", tt.id, base, quote, tt.base, tt.quote)
		}
	}
}
