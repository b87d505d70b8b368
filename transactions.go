package fundquotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying ledger commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdInit        CommandType = "init"
	CmdDeclare     CommandType = "declare"
	CmdUpdatePrice CommandType = "update-price"
)

// Transaction defines the common interface for all commands recorded in the
// ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "declare").
	When() Date        // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction.
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType {
	return t.Command
}

// When returns the date of the transaction.
func (t baseCmd) When() Date {
	return t.Date
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// --- Init Command ---

// Init represents the initialization of the ledger.
// It sets the reporting currency and must be the first transaction.
type Init struct {
	baseCmd
	Currency string `json:"currency"`
}

// NewInit creates a new Init transaction.
func NewInit(date Date, memo string, currency string) Init {
	return Init{
		baseCmd:  baseCmd{Command: CmdInit, Date: date, Memo: memo},
		Currency: currency,
	}
}

func (t Init) Equal(other Transaction) bool {
	o, ok := other.(Init)
	return ok && t.baseCmd == o.baseCmd && t.Currency == o.Currency
}

// Validate checks the Init transaction's fields. When the ledger already
// starts with an Init, the existing one is updated idempotently.
func (t Init) Validate(ledger *Ledger) (Transaction, error) {
	if err := ValidateCurrency(t.Currency); err != nil {
		return t, fmt.Errorf("invalid currency for init: %w", err)
	}

	if len(ledger.transactions) > 0 {
		if existingInit, ok := ledger.transactions[0].(Init); ok {
			if !t.Date.IsZero() {
				existingInit.Date = t.Date
			}
			if t.Currency != "" {
				existingInit.Currency = t.Currency
			}
			if t.Memo != "" {
				existingInit.Memo = t.Memo
			}
			return existingInit, nil
		}

		// First tx is not Init: the new Init must come before it.
		firstTxDate := ledger.transactions[0].When()
		if t.Date.IsZero() {
			t.Date = firstTxDate // Quick fix: set date to the first day.
		} else if t.Date.After(firstTxDate) {
			return t, fmt.Errorf("init date %s must be before or equal to the first transaction date %s", t.Date, firstTxDate)
		}
	} else if t.Date.IsZero() {
		t.Date = Today()
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Init.
func (t Init) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("currency", t.Currency)
	return w.MarshalJSON()
}

// --- Declare Command ---

// Declare represents a transaction to declare a security for use in the ledger.
// This maps a ledger-internal ticker to a globally unique security ID and its
// currency.
type Declare struct {
	baseCmd
	Ticker      string `json:"ticker"`
	ID          ID     `json:"id"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// NewDeclare creates a new Declare transaction.
func NewDeclare(day Date, memo, ticker string, id ID, currency, description string) Declare {
	return Declare{
		baseCmd:     baseCmd{Command: CmdDeclare, Date: day, Memo: memo},
		Ticker:      ticker,
		ID:          id,
		Currency:    currency,
		Description: description,
	}
}

// MarshalJSON implements the json.Marshaler interface for Declare.
func (t Declare) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Append("id", t.ID)
	w.Append("currency", t.Currency)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

func (t Declare) Equal(other Transaction) bool {
	o, ok := other.(Declare)
	return ok && t.baseCmd == o.baseCmd && t.Ticker == o.Ticker && t.ID == o.ID &&
		t.Currency == o.Currency && t.Description == o.Description
}

// Validate checks the Declare transaction's fields.
// It ensures the ticker is not already declared and that the ID and currency are valid.
func (t Declare) Validate(ledger *Ledger) (Transaction, error) {
	t.baseCmd.Validate()
	if t.Ticker == "" {
		return t, errors.New("declaration ticker is missing")
	}
	if t.ID == "" {
		return t, errors.New("declaration security ID is missing")
	}
	if _, err := ParseID(t.ID.String()); err != nil {
		return t, fmt.Errorf("invalid security ID %q for declaration: %w", t.ID, err)
	}
	if err := ValidateCurrency(t.Currency); err != nil {
		return t, fmt.Errorf("invalid currency for declaration: %w", err)
	}
	if base, quote, err := t.ID.CurrencyPair(); err == nil {
		if e := ValidateCurrency(base); e != nil {
			return t, fmt.Errorf("invalid currency pair %q: %w", t.ID, e)
		}
		if quote != t.Currency {
			return t, fmt.Errorf("currency pair %q must be declared in its quote currency %s, not %s", t.ID, quote, t.Currency)
		}
	}

	if ledger.Security(t.Ticker) != nil {
		return t, fmt.Errorf("security %q already declared in ledger", t.Ticker)
	}

	return t, nil
}

// --- UpdatePrice Command ---

// UpdatePrice represents a transaction to record the prices of multiple
// securities on a specific date.
type UpdatePrice struct {
	baseCmd
	Prices map[string]decimal.Decimal
}

// NewUpdatePrice creates a new UpdatePrice transaction for a single security.
func NewUpdatePrice(date Date, ticker string, price decimal.Decimal) UpdatePrice {
	return UpdatePrice{
		baseCmd: baseCmd{Command: CmdUpdatePrice, Date: date},
		Prices:  map[string]decimal.Decimal{ticker: price},
	}
}

// NewUpdatePrices creates a new UpdatePrice transaction for multiple securities.
func NewUpdatePrices(date Date, prices map[string]decimal.Decimal) UpdatePrice {
	if prices == nil {
		prices = make(map[string]decimal.Decimal)
	}
	return UpdatePrice{
		baseCmd: baseCmd{Command: CmdUpdatePrice, Date: date},
		Prices:  prices,
	}
}

// MarshalJSON implements the json.Marshaler interface for UpdatePrice.
func (t UpdatePrice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)

	// Custom marshaling for the 'prices' map to ensure stable key order.
	var pricesObject jsonObjectWriter
	for ticker, price := range t.PricesIter() {
		pricesObject.Append(ticker, price)
	}
	pricesBytes, err := pricesObject.MarshalJSON()
	if err != nil {
		return nil, err
	}

	w.WriteString(`"prices":`)
	w.Write(pricesBytes)
	w.WriteString(",")

	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for UpdatePrice.
func (t *UpdatePrice) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseCmd
		Prices map[string]decimal.Decimal `json:"prices"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.Prices = temp.Prices
	return nil
}

// PricesIter returns an iterator that yields ticker and price pairs in a
// stable, sorted order.
func (t UpdatePrice) PricesIter() iter.Seq2[string, decimal.Decimal] {
	keys := slices.Collect(maps.Keys(t.Prices))
	slices.Sort(keys)
	return func(yield func(string, decimal.Decimal) bool) {
		for _, key := range keys {
			if !yield(key, t.Prices[key]) {
				return
			}
		}
	}
}

func (t UpdatePrice) Equal(other Transaction) bool {
	o, ok := other.(UpdatePrice)
	if !ok || t.baseCmd != o.baseCmd || len(t.Prices) != len(o.Prices) {
		return false
	}
	for k, v := range t.Prices {
		if ov, ok := o.Prices[k]; !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Validate checks the UpdatePrice transaction's fields.
func (t UpdatePrice) Validate(ledger *Ledger) (Transaction, error) {
	t.baseCmd.Validate()
	for ticker, price := range t.Prices {
		if ledger.Security(ticker) == nil {
			return t, fmt.Errorf("security %q not declared in ledger", ticker)
		}
		if !price.IsPositive() {
			return t, fmt.Errorf("price for %s must be positive, got %v", ticker, price)
		}
	}
	return t, nil
}
