package expense

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/expense/split"
	"github.com/akasem/divvy/internal/money"
)

func TestConvertShares_SumsToConvertedTotal(t *testing.T) {
	// 100.00 split three ways, converted at 0.9137
	total := money.Amount(1000000)
	rate := money.Amount(9137)

	shares := []split.Share{
		{MemberID: 1, Amount: 333400},
		{MemberID: 2, Amount: 333300},
		{MemberID: 3, Amount: 333300},
	}

	convertedTotal := money.Mul(total, rate)
	converted := convertShares(shares, rate, convertedTotal)

	require.Len(t, converted, 3)
	assert.Equal(t, convertedTotal, money.Sum(converted))
}

func TestConvertShares_IdentityRateKeepsShares(t *testing.T) {
	shares := []split.Share{
		{MemberID: 1, Amount: 250000},
		{MemberID: 2, Amount: 250000},
	}

	converted := convertShares(shares, money.Scale, 500000)

	assert.Equal(t, []money.Amount{250000, 250000}, converted)
}

func TestParseParticipants(t *testing.T) {
	pct := 33.3333
	amount := "12.50"

	inputs, err := parseParticipants([]*ParticipantRequest{
		{MemberID: 1, Percentage: &pct},
		{MemberID: 2, Amount: &amount},
		{MemberID: 3},
	})
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	require.NotNil(t, inputs[0].Percentage)
	assert.Equal(t, money.Percentage(333333), *inputs[0].Percentage)
	require.NotNil(t, inputs[1].Amount)
	assert.Equal(t, money.Amount(125000), *inputs[1].Amount)
	assert.Nil(t, inputs[2].Percentage)
	assert.Nil(t, inputs[2].Amount)
}

func TestParseParticipants_RejectsBadInputs(t *testing.T) {
	bad := "not-a-number"
	_, err := parseParticipants([]*ParticipantRequest{{MemberID: 1, Amount: &bad}})
	assert.Error(t, err)

	inf := math.Inf(1)
	_, err = parseParticipants([]*ParticipantRequest{{MemberID: 1, Percentage: &inf}})
	assert.Error(t, err)
}
