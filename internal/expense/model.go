package expense

import (
	"time"

	"github.com/akasem/divvy/internal/expense/split"
	"github.com/akasem/divvy/internal/money"
)

// PaymentType distinguishes ordinary shared expenses from direct
// person-to-person transfers
type PaymentType string

const (
	PaymentTypeExpense  PaymentType = "EXPENSE"
	PaymentTypeTransfer PaymentType = "TRANSFER"
)

// Expense represents a payment event in a group. Amount is in the original
// currency; ConvertedAmount is the same total in the group's main currency,
// computed once at creation time from the snapshot ExchangeRate and never
// recomputed, so history stays stable when live rates move.
type Expense struct {
	ID              int64        `json:"id"`
	GroupID         int64        `json:"group_id"`
	PayerID         int64        `json:"payer_id"`
	Description     string       `json:"description"`
	Amount          money.Amount `json:"amount"`
	CurrencyCode    string       `json:"currency_code"`
	ExchangeRate    money.Amount `json:"exchange_rate"`
	ConvertedAmount money.Amount `json:"converted_amount"`
	PaymentType     PaymentType  `json:"payment_type"`
	SplitType       string       `json:"split_type"` // EQUAL, PERCENTAGE, EXACT
	CreatedAt       time.Time    `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Share is one member's slice of an expense: the amount in the expense's
// original currency and the same amount in the group's main currency. For a
// given expense the shares sum exactly to the expense total in both
// currencies. A transfer has exactly one share, the recipient's.
type Share struct {
	ID              int64        `json:"id"`
	ExpenseID       int64        `json:"expense_id"`
	MemberID        int64        `json:"member_id"`
	Amount          money.Amount `json:"amount"`
	ConvertedAmount money.Amount `json:"converted_amount"`

	// Populated via JOIN
	MemberName string `json:"member_name,omitempty"`
}

// ExpenseWithShares combines an expense with its shares
type ExpenseWithShares struct {
	Expense *Expense `json:"expense"`
	Shares  []*Share `json:"shares"`
}

// Participant is used when creating an expense with splits
type Participant struct {
	MemberID   int64             `json:"member_id"`
	Percentage *money.Percentage `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *money.Amount     `json:"amount,omitempty"`     // For EXACT split
}

// ToSplitInput converts to the split package's input type
func (p *Participant) ToSplitInput() split.Input {
	return split.Input{
		MemberID:   p.MemberID,
		Percentage: p.Percentage,
		Amount:     p.Amount,
	}
}
