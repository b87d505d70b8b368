package fundquotes

import "testing"

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{code: "PLN"},
		{code: "EUR"},
		{code: "USD"},
		{code: "", wantErr: true},
		{code: "XYZ", wantErr: true},
		{code: "pln", wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateCurrency(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCurrency(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		name  string
		money Money
		want  string
	}{
		{name: "PLN fund price", money: M(182.69, "PLN"), want: "182,69 zł"},
		{name: "EUR", money: M(100, "EUR"), want: "€100.00"},
		{name: "negative USD", money: M(-5.5, "USD"), want: "-$5.50"},
	}

	for _, tt := range tests {
		if got := tt.money.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
