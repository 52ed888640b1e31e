package split

import (
	"fmt"

	"github.com/akasem/divvy/internal/money"
)

// Type defines the type of split strategy
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeExact      Type = "EXACT"
)

// Input represents a participant in a split with optional values
type Input struct {
	MemberID   int64             `json:"member_id"`
	Percentage *money.Percentage `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *money.Amount     `json:"amount,omitempty"`     // For EXACT split
}

// Share represents the calculated share for a single participant. Every
// participant gets a share, the payer included; the sum of all shares equals
// the split total exactly.
type Share struct {
	MemberID int64        `json:"member_id"`
	Amount   money.Amount `json:"amount"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the shares for all participants, in input order,
	// summing exactly to total
	Calculate(total money.Amount, participants []Input) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(total money.Amount, participants []Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

// memberIDs collects the participant ids in input order.
func memberIDs(participants []Input) []int64 {
	ids := make([]int64, len(participants))
	for i, p := range participants {
		ids[i] = p.MemberID
	}
	return ids
}
