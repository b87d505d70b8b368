package fundquotes

import (
	"fmt"
	"strings"
	"unicode"
)

// ID is the globally unique identifier of a security.
//
// Two forms are recognized:
//   - a currency pair: exactly six uppercase letters, e.g. "EURPLN";
//   - a provider-prefixed name, e.g. "Bossa-UniKorona Akcje", where the part
//     after the provider prefix is the official name used by that provider.
type ID string

func (id ID) String() string { return string(id) }

// ParseID validates the string form of an ID.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", fmt.Errorf("security ID is empty")
	}
	if strings.TrimSpace(s) != s {
		return "", fmt.Errorf("security ID %q has leading or trailing spaces", s)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("security ID %q contains control characters", s)
		}
	}
	return ID(s), nil
}

// CurrencyPair splits a six-letter pair ID into its base and quote currencies.
func (id ID) CurrencyPair() (base, quote string, err error) {
	if len(id) != 6 {
		return "", "", fmt.Errorf("ID %q is not a currency pair", id)
	}
	for _, r := range id {
		if r < 'A' || r > 'Z' {
			return "", "", fmt.Errorf("ID %q is not a currency pair", id)
		}
	}
	return string(id[:3]), string(id[3:]), nil
}

// Security represents a tradeable asset declared in the ledger, such as an
// investment fund or a currency pair.
type Security struct {
	id          ID     // The unique identifier (provider-prefixed name or currency pair).
	ticker      string // The human-friendly ticker used in the ledger.
	currency    string // The currency in which the security is quoted.
	description string // A user-provided description for the security.
}

func NewSecurity(id ID, ticker, currency, description string) Security {
	return Security{
		id:          id,
		ticker:      ticker,
		currency:    currency,
		description: description,
	}
}

// ID returns the unique identifier of the security.
func (s Security) ID() ID {
	return s.id
}

// Ticker returns the human-friendly ticker symbol of the security.
func (s Security) Ticker() string {
	return s.ticker
}

func (s Security) Currency() string {
	return s.currency
}

// Description returns the user-provided description for the security.
func (s Security) Description() string {
	return s.description
}
