package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is a fixed-point decimal amount with two fraction digits.
// Arithmetic stays exact; Round applies the single rounding rule
// (half-up to cents) used at every pricing boundary.
type Money struct {
	amount decimal.Decimal
}

// New constructs Money from a decimal amount.
func New(d decimal.Decimal) Money {
	return Money{amount: d}
}

// FromString parses a decimal string like "100.00".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d}, nil
}

// MustFromString parses a decimal string and panics on failure; useful in tests and fixtures.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt constructs Money from whole currency units.
func FromInt(v int64) Money {
	return Money{amount: decimal.NewFromInt(v)}
}

// Zero is the zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Add returns m + other without rounding.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other without rounding.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt multiplies the amount by an integer factor (nights, extra guests).
func (m Money) MulInt(times int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(times))}
}

// ApplyPercent scales the amount by pct/100, e.g. pct=120 adds 20%.
func (m Money) ApplyPercent(pct decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(pct.Div(hundred))}
}

// DivInt divides the amount by an integer, used for per-night display spreads.
func (m Money) DivInt(by int64) Money {
	return Money{amount: m.amount.Div(decimal.NewFromInt(by))}
}

// Round rounds half-up to two decimal places.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal compares two amounts numerically.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the underlying exact value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON renders the amount as a quoted fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.amount.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal literals.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.amount = d
	return nil
}
