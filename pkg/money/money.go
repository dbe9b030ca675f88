// Package money holds the amount rules shared by the wire types, storage and
// the balance engine: lenient coercion, the accepted range and display
// rounding.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places amounts are rounded to for display.
const Places = 2

const (
	// Scale limits keep arithmetic on a parsed value proportional to its
	// input length. A value like 1e10000000 is short to send but expands to
	// ten million digits.
	minExponent = -20
	maxExponent = 12
)

// Max is the largest magnitude accepted for any single amount.
var Max = decimal.New(1, maxExponent)

// InRange reports whether d is within the supported magnitude and scale.
// The exponent is checked first, since comparing values rescales them.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < minExponent || exp > maxExponent {
		return false
	}
	return d.Abs().Cmp(Max) <= 0
}

// Coerce converts a loosely typed upstream value into a non-negative amount.
// Anything that is not a finite, non-negative number within range becomes zero.
func Coerce(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return NonNegative(x)
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return NonNegative(*x)
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return NonNegative(decimal.NewFromInt(int64(x)))
	case int32:
		return NonNegative(decimal.NewFromInt(int64(x)))
	case int64:
		return NonNegative(decimal.NewFromInt(x))
	case json.Number:
		return Parse(string(x))
	case string:
		return Parse(x)
	default:
		return decimal.Zero
	}
}

// Parse parses a decimal string, returning zero for empty, malformed,
// negative or out-of-range input.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// NonNegative returns d, or zero when d is negative or out of range.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() || !InRange(d) {
		return decimal.Zero
	}
	return d
}

// Round rounds d to display precision, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return NonNegative(decimal.NewFromFloat(f))
}
