package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/money"
)

// code extracts the typed code from a guard failure.
func code(t *testing.T, err error) Code {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validate.Error, got %v", err)
	return verr.Code
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("payer_id", true))

	err := Required("payer_id", false)
	assert.Equal(t, CodeRequired, code(t, err))
}

func TestNonNegativeAmount(t *testing.T) {
	assert.NoError(t, NonNegativeAmount("amount", 0))
	assert.NoError(t, NonNegativeAmount("amount", 123400))

	err := NonNegativeAmount("amount", -1)
	assert.Equal(t, CodeNegativeValue, code(t, err))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func TestFiniteNumber(t *testing.T) {
	assert.NoError(t, FiniteNumber("amount", 12.34))

	assert.Equal(t, CodeNotFinite, code(t, FiniteNumber("amount", math.NaN())))
	assert.Equal(t, CodeNotFinite, code(t, FiniteNumber("amount", math.Inf(-1))))
}

func TestNoDuplicateIDs(t *testing.T) {
	assert.NoError(t, NoDuplicateIDs("participants", nil))
	assert.NoError(t, NoDuplicateIDs("participants", []int64{1, 2, 3}))

	err := NoDuplicateIDs("participants", []int64{1, 2, 1})
	assert.Equal(t, CodeDuplicateID, code(t, err))
}

func TestMembersResolve(t *testing.T) {
	members := []int64{1, 2, 3}

	assert.NoError(t, MembersResolve("shares", []int64{1, 3}, members))

	err := MembersResolve("shares", []int64{1, 4}, members)
	assert.Equal(t, CodeUnresolvedReference, code(t, err))
}

func TestPercentageInRange(t *testing.T) {
	half, _ := money.PercentageFromFloat(50)
	assert.NoError(t, PercentageInRange("percentage", half))

	over, _ := money.PercentageFromFloat(100.0001)
	assert.Equal(t, CodePercentageOutOfRange, code(t, PercentageInRange("percentage", over)))

	assert.Equal(t, CodePercentageOutOfRange, code(t, PercentageInRange("percentage", -1)))
}

func TestPercentagesSumTo100(t *testing.T) {
	p := func(f float64) money.Percentage {
		v, err := money.PercentageFromFloat(f)
		require.NoError(t, err)
		return v
	}

	assert.NoError(t, PercentagesSumTo100("percentages", []money.Percentage{p(33.3333), p(66.6667)}))

	// 99.995 + tolerance of 0.01 still passes.
	assert.NoError(t, PercentagesSumTo100("percentages", []money.Percentage{p(50), p(49.995)}))

	err := PercentagesSumTo100("percentages", []money.Percentage{p(50), p(40)})
	assert.Equal(t, CodePercentageSumMismatch, code(t, err))
}

func TestNonEmptyString(t *testing.T) {
	assert.NoError(t, NonEmptyString("name", "Trip to Osaka"))
	assert.Equal(t, CodeEmptyString, code(t, NonEmptyString("name", "")))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("email", "alice@example.com"))

	assert.Equal(t, CodeInvalidEmail, code(t, Email("email", "not-an-email")))
	assert.Equal(t, CodeInvalidEmail, code(t, Email("email", "a@b")))
}
