package split

import (
	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/validate"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(total money.Amount, participants []Input) error {
	if err := validate.NonNegativeAmount("amount", total); err != nil {
		return err
	}
	if err := validate.NoDuplicateIDs("participants", memberIDs(participants)); err != nil {
		return err
	}

	percentages := make([]money.Percentage, len(participants))
	for i, p := range participants {
		if err := validate.Required("percentage", p.Percentage != nil); err != nil {
			return err
		}
		if err := validate.PercentageInRange("percentage", *p.Percentage); err != nil {
			return err
		}
		percentages[i] = *p.Percentage
	}

	return validate.PercentagesSumTo100("percentages", percentages)
}

// Calculate divides the total based on each participant's percentage, handing
// the truncation leftover to the first participants
func (s *PercentageStrategy) Calculate(total money.Amount, participants []Input) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	percentages := make([]money.Percentage, len(participants))
	for i, p := range participants {
		percentages[i] = *p.Percentage
	}

	amounts := PercentageShares(total, percentages)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{MemberID: p.MemberID, Amount: amounts[i]}
	}
	return shares, nil
}

// PercentageShares computes each participant's truncated percentage of total,
// then closes the leftover gap with the exact-split redistribution: additions
// one scaled unit at a time starting from the first participant, and when the
// percentages sum slightly over 100 (the guard tolerates up to 100.01) the
// overshoot comes off the positive shares from the back, so a 0% participant
// never goes negative.
func PercentageShares(total money.Amount, percentages []money.Percentage) []money.Amount {
	if len(percentages) == 0 {
		return []money.Amount{}
	}

	shares := make([]money.Amount, len(percentages))
	for i, p := range percentages {
		shares[i] = p.Of(total)
	}

	return NormalizeExact(shares, total)
}
