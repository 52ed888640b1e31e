package settlement

import (
	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
)

// Settlement is a computed transfer recommendation: the payer owes the payee
// the given amount, in the group's main currency. Settlements are derived on
// demand from the ledger and never persisted; recording one materializes a
// transfer-type expense instead. Amount is always positive.
type Settlement struct {
	PayerID int64        `json:"payer_id"`
	PayeeID int64        `json:"payee_id"`
	Amount  money.Amount `json:"amount"`

	// Populated from the ledger's member list
	PayerName string `json:"payer_name,omitempty"`
	PayeeName string `json:"payee_name,omitempty"`
}

// Step is one frame of the simplification trace: the settlement list at that
// point, the indices of settlements about to be merged, and the indices of
// settlements just produced by the previous merge. Indices refer to this
// step's own Settlements slice.
type Step struct {
	Settlements []Settlement `json:"settlements"`
	Highlighted []int        `json:"highlighted,omitempty"`
	Result      []int        `json:"result,omitempty"`
}

// MemberBalance is one member's net position in the group's main currency:
// positive means the group owes them, negative means they owe the group.
type MemberBalance struct {
	MemberID int64        `json:"member_id"`
	Name     string       `json:"name"`
	Amount   money.Amount `json:"amount"`
}

// Member is a group member as the solver sees it: an externally supplied
// identity, immutable for the duration of a computation.
type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Ledger is the consistent snapshot the solver computes over: the group's
// members and its expenses with their shares, in creation order.
type Ledger struct {
	Members []Member                     `json:"members"`
	Entries []*expense.ExpenseWithShares `json:"entries"`
}

// MemberIDs returns the member ids in ledger order.
func (l *Ledger) MemberIDs() []int64 {
	ids := make([]int64, len(l.Members))
	for i, m := range l.Members {
		ids[i] = m.ID
	}
	return ids
}

// memberNames maps member id to display name.
func (l *Ledger) memberNames() map[int64]string {
	names := make(map[int64]string, len(l.Members))
	for _, m := range l.Members {
		names[m.ID] = m.Name
	}
	return names
}
