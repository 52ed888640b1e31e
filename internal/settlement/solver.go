package settlement

import (
	"sort"

	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
)

// NoSimplify records the literal pairwise debts a ledger creates: for every
// expense, every share whose member is not the payer owes the payer that
// share's main-currency amount. Debts between the same ordered pair are
// accumulated into one settlement, but opposite-direction debts are never
// canceled against each other; A owing B and B owing A both appear. Zero
// shares and the payer's own share create no debt. Output order is the order
// each (payer, payee) pair was first encountered.
func NoSimplify(entries []*expense.ExpenseWithShares) []Settlement {
	type pair struct {
		debtor, creditor int64
	}

	totals := make(map[pair]money.Amount)
	var order []pair

	for _, entry := range entries {
		payerID := entry.Expense.PayerID
		for _, share := range entry.Shares {
			if share.MemberID == payerID || share.ConvertedAmount == 0 {
				continue
			}
			p := pair{debtor: share.MemberID, creditor: payerID}
			if _, seen := totals[p]; !seen {
				order = append(order, p)
			}
			totals[p] += share.ConvertedAmount
		}
	}

	settlements := make([]Settlement, 0, len(order))
	for _, p := range order {
		settlements = append(settlements, Settlement{
			PayerID: p.debtor,
			PayeeID: p.creditor,
			Amount:  totals[p],
		})
	}
	return settlements
}

// Simplify factors a net balance vector into a small list of transfers using
// greedy largest-debtor-vs-largest-creditor matching. It is a deterministic
// heuristic, not a proof-optimal minimizer: members are partitioned into
// creditors (balance > 0) and debtors (balance < 0), both sorted by magnitude
// with ties broken by memberOrder, and matched pairwise settling
// min(|debt|, credit) each round, advancing whichever side hits zero.
//
// Applying the result as transfers reproduces the input balances exactly.
func Simplify(balances map[int64]money.Amount, memberOrder []int64) []Settlement {
	type party struct {
		id     int64
		amount money.Amount // positive magnitude
	}

	var creditors, debtors []party
	for _, id := range memberOrder {
		switch b := balances[id]; {
		case b > 0:
			creditors = append(creditors, party{id: id, amount: b})
		case b < 0:
			debtors = append(debtors, party{id: id, amount: -b})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}

		settlements = append(settlements, Settlement{
			PayerID: debtors[i].id,
			PayeeID: creditors[j].id,
			Amount:  amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}

	return settlements
}
