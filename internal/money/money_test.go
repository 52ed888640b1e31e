package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want Amount
	}{
		{"whole units", 100, 1000000},
		{"two decimals", 12.34, 123400},
		{"four decimals", 4.5678, 45678},
		{"rounds half up", 0.00005, 1},
		{"rounds half away from zero when negative", -0.00005, -1},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromFloat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFloat_NotFinite(t *testing.T) {
	_, err := FromFloat(math.NaN())
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = FromFloat(math.Inf(1))
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestFromString(t *testing.T) {
	got, err := FromString("12.3456")
	require.NoError(t, err)
	assert.Equal(t, Amount(123456), got)

	got, err = FromString("-0.5")
	require.NoError(t, err)
	assert.Equal(t, Amount(-5000), got)

	_, err = FromString("not money")
	assert.Error(t, err)
}

func TestFromDecimal_RoundsPastFourDigits(t *testing.T) {
	d := decimal.RequireFromString("12.34556")
	assert.Equal(t, Amount(123456), FromDecimal(d))
}

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a, b Amount
		want Amount
	}{
		{"exchange rate application", 1000000, 8500, 850000}, // 100 * 0.85 = 85
		{"truncates toward zero", 15, 15, 0},                 // 0.0015^2 -> 0.0000...
		{"negative truncates toward zero", -15, 15, 0},
		{"identity rate", 123456, Scale, 123456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mul(tt.a, tt.b))
		})
	}
}

func TestMul_LargeValuesDoNotOverflow(t *testing.T) {
	// 1 billion units times a rate of 2: the raw int64 product of the two
	// scaled operands would overflow, the big.Int intermediate must not.
	amount := Amount(1_000_000_000 * Scale)
	rate := Amount(2 * Scale)
	assert.Equal(t, Amount(2_000_000_000*Scale), Mul(amount, rate))
}

func TestDiv_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, Amount(3333), Div(10000, 3))
	assert.Equal(t, Amount(-3333), Div(-10000, 3))
}

func TestSum(t *testing.T) {
	assert.Equal(t, Amount(0), Sum(nil))
	assert.Equal(t, Amount(0), Sum([]Amount{}))
	assert.Equal(t, Amount(600), Sum([]Amount{100, 200, 300}))
	assert.Equal(t, Amount(-100), Sum([]Amount{100, -200}))
}

func TestPercentageFromFloat(t *testing.T) {
	p, err := PercentageFromFloat(12.34556)
	require.NoError(t, err)
	assert.Equal(t, Percentage(123456), p)

	p, err = PercentageFromFloat(33.3333)
	require.NoError(t, err)
	assert.Equal(t, Percentage(333333), p)

	_, err = PercentageFromFloat(math.NaN())
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestPercentageOf(t *testing.T) {
	half, _ := PercentageFromFloat(50)
	assert.Equal(t, Amount(5000), half.Of(10000))

	third, _ := PercentageFromFloat(33.3333)
	assert.Equal(t, Amount(3333), third.Of(10000))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   Amount
		want string
	}{
		{"whole", 1000000, "100.00"},
		{"two decimals", 123400, "12.34"},
		{"rounds stored tail half up", 123456, "12.35"},
		{"negative sign precedes numeral", -123456, "-12.35"},
		{"zero", 0, "0.00"},
		{"small fraction", 50, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Format())
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$12.34", Amount(123400).FormatCurrency("$"))
	assert.Equal(t, "-$12.34", Amount(-123400).FormatCurrency("$"))
}
