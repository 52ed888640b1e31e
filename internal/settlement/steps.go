package settlement

import (
	"sort"

	"github.com/akasem/divvy/internal/balance"
	"github.com/akasem/divvy/internal/expense"
)

// Steps traces the non-simplified settlement list collapsing into the
// simplified one as a replayable sequence for UI animation. Step 0 is the
// full non-simplified list with no marks. Each reduction then contributes two
// frames: one highlighting the pair of settlements about to merge, and one
// showing the list after the merge with the produced settlements marked as
// the result. The terminal frame equals the simplified list. When nothing can
// be reduced the trace is the single trivial step.
func Steps(entries []*expense.ExpenseWithShares, memberOrder []int64) []Step {
	working := NoSimplify(entries)
	target := Simplify(balance.Compute(entries, memberOrder), memberOrder)

	steps := []Step{{Settlements: cloneSettlements(working)}}

	for {
		i, j, ok := findReduction(working)
		if !ok {
			break
		}

		steps = append(steps, Step{
			Settlements: cloneSettlements(working),
			Highlighted: []int{i, j},
		})

		next, produced := mergePair(working, i, j)
		steps = append(steps, Step{
			Settlements: cloneSettlements(next),
			Result:      produced,
		})
		working = next
	}

	// The pairwise reducer can end on a different (equally valid) bipartite
	// pairing than the greedy solver; regroup into the solver's answer so the
	// trace always lands on what the simplified endpoint returns.
	if !sameSettlements(working, target) {
		steps = append(steps, Step{
			Settlements: cloneSettlements(working),
			Highlighted: allIndices(len(working)),
		})
		steps = append(steps, Step{
			Settlements: cloneSettlements(target),
			Result:      allIndices(len(target)),
		})
	}

	return steps
}

// findReduction scans settlement pairs in order and returns the first pair
// that netting can merge: duplicated ordered pairs, reciprocal debts, or a
// chain where one settlement's payee is the other's payer.
func findReduction(s []Settlement) (int, int, bool) {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			a, b := s[i], s[j]
			switch {
			case a.PayerID == b.PayerID && a.PayeeID == b.PayeeID:
				return i, j, true
			case a.PayerID == b.PayeeID && a.PayeeID == b.PayerID:
				return i, j, true
			case a.PayeeID == b.PayerID || b.PayeeID == a.PayerID:
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// mergePair nets settlements i and j (i < j) and returns the new list plus
// the indices of the settlements the merge produced. The merged results take
// position i; everything else keeps its relative order.
func mergePair(s []Settlement, i, j int) ([]Settlement, []int) {
	a, b := s[i], s[j]

	var merged []Settlement
	switch {
	case a.PayerID == b.PayerID && a.PayeeID == b.PayeeID:
		merged = []Settlement{{PayerID: a.PayerID, PayeeID: a.PayeeID, Amount: a.Amount + b.Amount}}

	case a.PayerID == b.PayeeID && a.PayeeID == b.PayerID:
		// Reciprocal debts cancel; only the excess survives.
		switch {
		case a.Amount > b.Amount:
			merged = []Settlement{{PayerID: a.PayerID, PayeeID: a.PayeeID, Amount: a.Amount - b.Amount}}
		case b.Amount > a.Amount:
			merged = []Settlement{{PayerID: b.PayerID, PayeeID: b.PayeeID, Amount: b.Amount - a.Amount}}
		}

	case a.PayeeID == b.PayerID:
		merged = routeThrough(a, b)

	default: // b.PayeeID == a.PayerID
		merged = routeThrough(b, a)
	}

	next := make([]Settlement, 0, len(s)-2+len(merged))
	next = append(next, s[:i]...)
	next = append(next, merged...)
	next = append(next, s[i+1:j]...)
	next = append(next, s[j+1:]...)

	produced := make([]int, len(merged))
	for k := range merged {
		produced[k] = i + k
	}
	return next, produced
}

// routeThrough nets a chain X -> M (first) and M -> Y (second) by sending
// min(both) directly from X to Y, leaving any excess on the heavier leg.
func routeThrough(first, second Settlement) []Settlement {
	amount := first.Amount
	if second.Amount < amount {
		amount = second.Amount
	}

	merged := []Settlement{{PayerID: first.PayerID, PayeeID: second.PayeeID, Amount: amount}}
	switch {
	case first.Amount > amount:
		merged = append(merged, Settlement{PayerID: first.PayerID, PayeeID: first.PayeeID, Amount: first.Amount - amount})
	case second.Amount > amount:
		merged = append(merged, Settlement{PayerID: second.PayerID, PayeeID: second.PayeeID, Amount: second.Amount - amount})
	}
	return merged
}

func cloneSettlements(s []Settlement) []Settlement {
	out := make([]Settlement, len(s))
	copy(out, s)
	return out
}

func allIndices(n int) []int {
	if n == 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// sameSettlements compares two settlement lists as multisets of
// (payer, payee, amount).
func sameSettlements(a, b []Settlement) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := cloneSettlements(a), cloneSettlements(b)
	canonical := func(s []Settlement) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].PayerID != s[j].PayerID {
				return s[i].PayerID < s[j].PayerID
			}
			if s[i].PayeeID != s[j].PayeeID {
				return s[i].PayeeID < s[j].PayeeID
			}
			return s[i].Amount < s[j].Amount
		})
	}
	canonical(as)
	canonical(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
