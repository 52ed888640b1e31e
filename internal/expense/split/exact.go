package split

import (
	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/validate"
)

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes a specific exact amount (normalized to sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(total money.Amount, participants []Input) error {
	if err := validate.NonNegativeAmount("amount", total); err != nil {
		return err
	}
	if err := validate.NoDuplicateIDs("participants", memberIDs(participants)); err != nil {
		return err
	}

	for _, p := range participants {
		if err := validate.Required("amount", p.Amount != nil); err != nil {
			return err
		}
		if err := validate.NonNegativeAmount("amount", *p.Amount); err != nil {
			return err
		}
	}
	return nil
}

// Calculate takes the specified amounts and normalizes them so they sum to
// total exactly, absorbing small gaps left by UI rounding
func (s *ExactStrategy) Calculate(total money.Amount, participants []Input) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	amounts := make([]money.Amount, len(participants))
	for i, p := range participants {
		amounts[i] = *p.Amount
	}
	amounts = NormalizeExact(amounts, total)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{MemberID: p.MemberID, Amount: amounts[i]}
	}
	return shares, nil
}

// NormalizeExact adjusts explicit shares so they sum to total exactly. When
// the shares fall short, one scaled unit is added at a time starting from the
// first participant. When they overshoot, one unit is subtracted at a time
// starting from the last participant, skipping shares that are not positive
// so no share is ever driven negative. Additions are front-loaded and
// subtractions back-loaded; callers depend on that ordering.
func NormalizeExact(shares []money.Amount, total money.Amount) []money.Amount {
	out := make([]money.Amount, len(shares))
	copy(out, shares)
	if len(out) == 0 {
		return out
	}

	diff := int64(total) - int64(money.Sum(out))

	for i := 0; diff > 0; i = (i + 1) % len(out) {
		out[i]++
		diff--
	}

	for diff < 0 {
		progressed := false
		for i := len(out) - 1; i >= 0 && diff < 0; i-- {
			if out[i] > 0 {
				out[i]--
				diff++
				progressed = true
			}
		}
		// Nothing left to take from; only reachable with a negative total.
		if !progressed {
			break
		}
	}
	return out
}
