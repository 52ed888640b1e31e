package money

import "fmt"

// Format renders a scaled amount at exactly 2 decimal digits, rounding half
// away from zero. The sign always precedes the numeral.
func (a Amount) Format() string {
	cents := roundToCents(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatCurrency renders a scaled amount with a currency symbol, e.g.
// "$12.34" or "-$12.34". The minus sign precedes the symbol.
func (a Amount) FormatCurrency(symbol string) string {
	cents := roundToCents(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}

// roundToCents collapses the 4 stored decimal digits to 2, half away from zero.
func roundToCents(a Amount) int64 {
	v := int64(a)
	if v >= 0 {
		return (v + 50) / 100
	}
	return (v - 50) / 100
}
