package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value scaled by a factor of 10,000 (4 implied decimal
// digits). All arithmetic on money happens on this integer type; floats only
// appear at the parse/display boundary.
type Amount int64

// Percentage is a percentage value scaled by the same factor of 10,000, so
// 33.3333% is stored exactly as 333333.
type Percentage int64

// Scale is the fixed scaling factor shared by Amount and Percentage.
const Scale = 10000

var (
	ErrNotFinite = errors.New("amount is not a finite number")
	ErrTooLarge  = errors.New("amount is too large")
)

// maxFloatInput keeps FromFloat well inside int64 range after scaling.
const maxFloatInput = 9e14

// FromFloat converts a decimal amount (e.g. 12.34) into a scaled Amount,
// rounding half away from zero. Use only at input boundaries; stored values
// never round-trip through floats.
func FromFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	if f > maxFloatInput || f < -maxFloatInput {
		return 0, ErrTooLarge
	}
	return Amount(math.Round(f * Scale)), nil
}

// FromString parses a decimal string (e.g. "12.3456") into a scaled Amount.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// FromDecimal converts an exact decimal into a scaled Amount, rounding half
// away from zero at the fourth decimal digit.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Shift(4).Round(0).IntPart())
}

// Decimal returns the exact decimal value of a.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -4)
}

// Float returns the approximate value of a. Display and debugging only.
func (a Amount) Float() float64 {
	return float64(a) / Scale
}

// Mul multiplies two scaled values and removes the redundant scale factor,
// truncating toward zero. The intermediate product goes through math/big so
// large totals cannot overflow int64. Used for percentage-of-total math and
// for currency conversion.
func Mul(a, b Amount) Amount {
	p := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b)))
	p.Quo(p, big.NewInt(Scale))
	return Amount(p.Int64())
}

// Div divides a scaled value by an integer divisor, truncating toward zero
// (Go's native integer division already truncates, for either sign).
func Div(a Amount, n int64) Amount {
	return Amount(int64(a) / n)
}

// Sum adds a sequence of scaled values. An empty sequence sums to zero.
func Sum(values []Amount) Amount {
	var total Amount
	for _, v := range values {
		total += v
	}
	return total
}

// Abs returns the absolute value of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// PercentageFromFloat converts a percentage (e.g. 33.3333) into its scaled
// form, rounding half away from zero at the fourth decimal digit.
func PercentageFromFloat(f float64) (Percentage, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return Percentage(math.Round(f * Scale)), nil
}

// Float returns the approximate percentage value. Display only.
func (p Percentage) Float() float64 {
	return float64(p) / Scale
}

// Of returns p percent of total, truncating toward zero. Both operands are
// scaled, so the product is divided by 100 * Scale.
func (p Percentage) Of(total Amount) Amount {
	product := new(big.Int).Mul(big.NewInt(int64(total)), big.NewInt(int64(p)))
	product.Quo(product, big.NewInt(100*Scale))
	return Amount(product.Int64())
}
