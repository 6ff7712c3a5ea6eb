package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a signed count of minor currency units. All monetary arithmetic
// in this codebase happens on Cents; decimal values exist only for display
// and persistence convenience and are always derived from the Cents value.
type Cents int64

// MaxCents caps amounts at $999,999,999.99. Anything above it is treated as
// malformed input rather than a legitimate household amount.
const MaxCents Cents = 99_999_999_999

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a decimal amount to Cents.
// Amounts with more than two fractional digits are rejected rather than
// rounded, so inputs like 1.005 fail deterministically instead of being
// silently nudged to 1.00 or 1.01.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	if !d.Equal(d.Truncate(2)) {
		return 0, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%s has more than two fractional digits", d.String())}
	}

	scaled := d.Mul(hundred)
	if scaled.Abs().GreaterThan(decimal.NewFromInt(int64(MaxCents))) {
		return 0, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%s exceeds the maximum supported amount", d.String())}
	}

	return Cents(scaled.IntPart()), nil
}

// FromString parses a decimal string and converts it to Cents.
func FromString(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a valid decimal amount", s)}
	}
	return FromDecimal(d)
}

// Decimal returns the display representation of the amount. The result is
// for serialization only; arithmetic stays on Cents.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount with exactly two fractional digits.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns the magnitude of the amount.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// ValidationError reports malformed or out-of-range monetary input. It is
// raised before any write happens and surfaced to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
