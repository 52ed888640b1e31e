// Package balance folds a group's ledger of expenses and shares into one net
// balance per member, in the group's main currency.
package balance

import (
	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
)

// Compute returns every member's net balance: what they paid minus what they
// were allocated, all in main-currency scaled units. Positive means the group
// owes the member, negative means the member owes the group. The sum of all
// balances is exactly zero for any valid ledger.
//
// Transfers fold in identically to expenses: the sender's balance rises by
// the transferred amount and the recipient's (the sole share) falls by the
// same amount.
func Compute(entries []*expense.ExpenseWithShares, memberIDs []int64) map[int64]money.Amount {
	balances := make(map[int64]money.Amount, len(memberIDs))
	for _, id := range memberIDs {
		balances[id] = 0
	}

	for _, entry := range entries {
		balances[entry.Expense.PayerID] += entry.Expense.ConvertedAmount
		for _, share := range entry.Shares {
			balances[share.MemberID] -= share.ConvertedAmount
		}
	}

	return balances
}
