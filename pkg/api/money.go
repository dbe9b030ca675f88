package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/pkg/money"
)

// Amount is a non-negative input amount. It decodes from a JSON number or a
// numeric string; anything else, including negative or out-of-range values,
// decodes to zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d, clamping negative values to zero.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{money.NonNegative(d)}
}

// AmountFromString parses s leniently.
func AmountFromString(s string) Amount {
	return Amount{money.Parse(s)}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = money.Coerce(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

// Money is a signed computed amount, such as a balance.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if !money.InRange(d) {
		return fmt.Errorf("money value out of range: %s", data)
	}
	m.Decimal = d
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}
