package split

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/validate"
)

func pct(t *testing.T, f float64) *money.Percentage {
	t.Helper()
	p, err := money.PercentageFromFloat(f)
	require.NoError(t, err)
	return &p
}

func amt(a money.Amount) *money.Amount {
	return &a
}

func TestEqualShares(t *testing.T) {
	tests := []struct {
		name  string
		total money.Amount
		n     int
		want  []money.Amount
	}{
		{"no remainder", 30000, 3, []money.Amount{10000, 10000, 10000}},
		{"front-loaded remainder", 31000, 3, []money.Amount{10334, 10333, 10333}},
		{"zero participants", 10000, 0, []money.Amount{}},
		{"zero total", 0, 3, []money.Amount{0, 0, 0}},
		{"single participant", 12345, 1, []money.Amount{12345}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EqualShares(tt.total, tt.n)
			assert.Equal(t, tt.want, got)
			if tt.n > 0 {
				assert.Equal(t, tt.total, money.Sum(got))
			}
		})
	}
}

func TestEqualShares_SevenWayRemainder(t *testing.T) {
	// 4.5678 split among 7 people still sums exactly.
	shares := EqualShares(45678, 7)
	require.Len(t, shares, 7)
	assert.Equal(t, money.Amount(45678), money.Sum(shares))

	// Remainder units go to the first participants only.
	for i := 1; i < len(shares); i++ {
		assert.LessOrEqual(t, shares[i], shares[i-1])
	}
}

func TestPercentageShares(t *testing.T) {
	third := *pct(t, 33.3333)
	twoThirds := *pct(t, 66.6667)

	got := PercentageShares(10000, []money.Percentage{third, twoThirds})
	assert.Equal(t, []money.Amount{3334, 6666}, got)
	assert.Equal(t, money.Amount(10000), money.Sum(got))
}

func TestPercentageShares_LeftoverIsFrontLoaded(t *testing.T) {
	third := *pct(t, 33.3333)
	pcts := []money.Percentage{third, third, *pct(t, 33.3334)}

	got := PercentageShares(10000, pcts)
	assert.Equal(t, money.Amount(10000), money.Sum(got))
	// Raw truncated shares are 3333/3333/3333; the single leftover unit goes
	// to the first participant.
	assert.Equal(t, []money.Amount{3334, 3333, 3333}, got)
}

func TestPercentageShares_OvershootNeverDrivesShareNegative(t *testing.T) {
	// 0% + 50.005% + 50.005% sums to 100.01, inside the guard's tolerance,
	// but truncation overshoots the total. The excess comes off the positive
	// shares from the back; the 0% participant stays at zero.
	pcts := []money.Percentage{0, *pct(t, 50.005), *pct(t, 50.005)}
	require.NoError(t, validate.PercentagesSumTo100("percentages", pcts))

	got := PercentageShares(100000, pcts)
	assert.Equal(t, money.Amount(100000), money.Sum(got))
	assert.Equal(t, money.Amount(0), got[0])
	for _, share := range got {
		assert.GreaterOrEqual(t, share, money.Amount(0))
	}
}

func TestPercentageShares_Empty(t *testing.T) {
	assert.Equal(t, []money.Amount{}, PercentageShares(10000, nil))
}

func TestNormalizeExact(t *testing.T) {
	tests := []struct {
		name   string
		shares []money.Amount
		total  money.Amount
		want   []money.Amount
	}{
		{"already exact", []money.Amount{4000, 6000}, 10000, []money.Amount{4000, 6000}},
		{"short adds to the front", []money.Amount{3333, 3333, 3333}, 10000, []money.Amount{3334, 3333, 3333}},
		{"over subtracts from the back", []money.Amount{3334, 3334, 3334}, 10000, []money.Amount{3334, 3333, 3333}},
		{"subtraction skips zero shares", []money.Amount{5001, 5001, 0}, 10000, []money.Amount{5000, 5000, 0}},
		{"empty", []money.Amount{}, 0, []money.Amount{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExact(tt.shares, tt.total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeExact_DoesNotMutateInput(t *testing.T) {
	in := []money.Amount{3333, 3333, 3333}
	_ = NormalizeExact(in, 10000)
	assert.Equal(t, []money.Amount{3333, 3333, 3333}, in)
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, typ := range []Type{TypeEqual, TypePercentage, TypeExact} {
		s, err := f.Create(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, s.Type())
	}

	_, err := f.CreateFromString("HALFSIES")
	assert.Error(t, err)
}

func TestEqualStrategy_Calculate(t *testing.T) {
	s := &EqualStrategy{}

	shares, err := s.Calculate(9000, []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}})
	require.NoError(t, err)
	assert.Equal(t, []Share{{1, 3000}, {2, 3000}, {3, 3000}}, shares)
}

func TestEqualStrategy_RejectsNegativeTotal(t *testing.T) {
	s := &EqualStrategy{}

	_, err := s.Calculate(-100, []Input{{MemberID: 1}})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validate.CodeNegativeValue, verr.Code)
}

func TestEqualStrategy_RejectsDuplicateParticipants(t *testing.T) {
	s := &EqualStrategy{}

	_, err := s.Calculate(9000, []Input{{MemberID: 1}, {MemberID: 1}})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validate.CodeDuplicateID, verr.Code)
}

func TestPercentageStrategy_Calculate(t *testing.T) {
	s := &PercentageStrategy{}

	shares, err := s.Calculate(10000, []Input{
		{MemberID: 1, Percentage: pct(t, 33.3333)},
		{MemberID: 2, Percentage: pct(t, 66.6667)},
	})
	require.NoError(t, err)
	assert.Equal(t, []Share{{1, 3334}, {2, 6666}}, shares)
}

func TestPercentageStrategy_RejectsBadSum(t *testing.T) {
	s := &PercentageStrategy{}

	_, err := s.Calculate(10000, []Input{
		{MemberID: 1, Percentage: pct(t, 50)},
		{MemberID: 2, Percentage: pct(t, 40)},
	})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validate.CodePercentageSumMismatch, verr.Code)
}

func TestPercentageStrategy_RequiresPercentages(t *testing.T) {
	s := &PercentageStrategy{}

	_, err := s.Calculate(10000, []Input{{MemberID: 1}})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validate.CodeRequired, verr.Code)
}

func TestExactStrategy_Calculate(t *testing.T) {
	s := &ExactStrategy{}

	// 33.33 + 66.66 entered in a UI against a 100.00 total; the missing cent
	// worth of scaled units is dealt out from the front, one unit per share.
	shares, err := s.Calculate(1000000, []Input{
		{MemberID: 1, Amount: amt(333300)},
		{MemberID: 2, Amount: amt(666600)},
	})
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1000000), money.Sum([]money.Amount{shares[0].Amount, shares[1].Amount}))
	assert.Equal(t, []Share{{1, 333350}, {2, 666650}}, shares)
}

func TestExactStrategy_RejectsNegativeShare(t *testing.T) {
	s := &ExactStrategy{}

	_, err := s.Calculate(1000, []Input{{MemberID: 1, Amount: amt(-1)}})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validate.CodeNegativeValue, verr.Code)
}
