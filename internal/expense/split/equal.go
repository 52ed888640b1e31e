package split

import (
	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/validate"
)

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(total money.Amount, participants []Input) error {
	if err := validate.NonNegativeAmount("amount", total); err != nil {
		return err
	}
	return validate.NoDuplicateIDs("participants", memberIDs(participants))
}

// Calculate divides the total equally among all participants, giving the
// leftover scaled units to the first participants
func (s *EqualStrategy) Calculate(total money.Amount, participants []Input) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	amounts := EqualShares(total, len(participants))

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{MemberID: p.MemberID, Amount: amounts[i]}
	}
	return shares, nil
}

// EqualShares divides total into n shares that sum to total exactly. The base
// share is total / n truncated; the remainder is handed out one scaled unit
// (0.0001) at a time to the first participants, in order. Deterministic and
// front-loaded, never random, never proportional.
func EqualShares(total money.Amount, n int) []money.Amount {
	if n <= 0 {
		return []money.Amount{}
	}

	base := money.Div(total, int64(n))
	remainder := int64(total) - int64(base)*int64(n)

	shares := make([]money.Amount, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
