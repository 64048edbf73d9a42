package fintrack

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the single currency all amounts are expressed in.
// The backend stores plain decimal amounts and the price feed quotes in
// USD, so there is no conversion layer.
const ReferenceCurrency = "USD"

// Money represents a monetary value in the reference currency.
type Money struct {
	value decimal.Decimal
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal amount from its string form, e.g. "12.50".
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: v}, nil
}

// currency returns the reference currency definition, never nil.
func (m Money) currency() *money.Currency {
	return money.New(0, ReferenceCurrency).Currency()
}

// String returns the formatted representation of the money value, e.g. "$123.46".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the formatted value with an explicit sign.
// Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// Mul scales a unit price by a held quantity.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }

// Div returns the unit price for a total over a quantity.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// InexactFloat64 returns the nearest float64. Display only, calculations stay exact.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// bigDecimal is the tagged decimal object some backends serialize instead
// of a plain number.
type bigDecimal struct {
	FloatValue *float64 `json:"floatValue"`
}

// UnmarshalJSON accepts a plain number, a numeric string, or a tagged
// decimal object. A malformed or missing value coerces to zero rather than
// failing the decode.
func (m *Money) UnmarshalJSON(bytes []byte) error {
	var v decimal.Decimal
	if err := json.Unmarshal(bytes, &v); err == nil {
		m.value = v
		return nil
	}
	var tagged bigDecimal
	if err := json.Unmarshal(bytes, &tagged); err == nil && tagged.FloatValue != nil {
		m.value = decimal.NewFromFloat(*tagged.FloatValue)
		return nil
	}
	m.value = decimal.Zero
	return nil
}

// MarshalJSON emits the amount as a plain number rounded to the currency
// fraction, the shape the backend expects from clients.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.Round(int32(m.currency().Fraction)).String()), nil
}

var _ json.Marshaler = (*Money)(nil)
var _ json.Unmarshaler = (*Money)(nil)
