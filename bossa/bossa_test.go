package bossa

import (
	"testing"

	"github.com/gregorias/fundquotes"
)

func TestBossaID(t *testing.T) {
	if got, want := BossaID("UniKorona Akcje"), fundquotes.ID("Bossa-UniKorona Akcje"); got != want {
		t.Errorf("BossaID() = %q, want %q", got, want)
	}
}

func TestBossaName(t *testing.T) {
	tests := []struct {
		id   fundquotes.ID
		name string
		ok   bool
	}{
		{id: "Bossa-UniKorona Akcje", name: "UniKorona Akcje", ok: true},
		{id: "EURPLN", ok: false},
		{id: "Amundi-Stars Global", ok: false},
	}

	for _, tt := range tests {
		name, ok := BossaName(tt.id)
		if ok != tt.ok {
			t.Errorf("BossaName(%q) ok = %v, want %v", tt.id, ok, tt.ok)
			continue
		}
		if ok && name != tt.name {
			t.Errorf("BossaName(%q) = %q, want %q", tt.id, name, tt.name)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "UniKorona Akcje", want: "UniKorona Akcje"},
		{in: "PKO Akcji Rynku Złota", want: "PKO Akcji Rynku Zlota"},
		{in: "Skarbiec Małych i Średnich Spółek", want: "Skarbiec Malych i Srednich Spolek"},
		{in: "  NN   Obligacji ", want: "NN Obligacji"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
