package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/balance"
	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
)

func TestSteps_NothingToExplain(t *testing.T) {
	// The dinner scenario is already minimal; the trace is the single
	// trivial step.
	members := []int64{1, 2, 3}
	steps := Steps(threeWayDinner(), members)

	require.Len(t, steps, 1)
	assert.Empty(t, steps[0].Highlighted)
	assert.Empty(t, steps[0].Result)
	assert.ElementsMatch(t, NoSimplify(threeWayDinner()), steps[0].Settlements)
}

func TestSteps_EmptyLedger(t *testing.T) {
	steps := Steps(nil, []int64{1, 2})

	require.Len(t, steps, 1)
	assert.Empty(t, steps[0].Settlements)
}

func TestSteps_DebtCycleCollapsesToNothing(t *testing.T) {
	members := []int64{1, 2, 3}
	steps := Steps(debtCycle(), members)

	require.GreaterOrEqual(t, len(steps), 3)

	// Step 0 is the full non-simplified list, unmarked.
	assert.Len(t, steps[0].Settlements, 3)
	assert.Empty(t, steps[0].Highlighted)
	assert.Empty(t, steps[0].Result)

	// The terminal step equals the simplified list: empty.
	assert.Empty(t, steps[len(steps)-1].Settlements)
}

func TestSteps_ReciprocalPairNets(t *testing.T) {
	entries := reciprocalEntries()
	members := []int64{1, 2}
	steps := Steps(entries, members)

	require.Len(t, steps, 3)

	// Frame 1 highlights the two settlements about to merge.
	assert.Len(t, steps[1].Settlements, 2)
	assert.Equal(t, []int{0, 1}, steps[1].Highlighted)

	// Frame 2 shows the merged settlement, marked as the result.
	require.Len(t, steps[2].Settlements, 1)
	assert.Equal(t, []int{0}, steps[2].Result)
	assert.Equal(t, Settlement{PayerID: 1, PayeeID: 2, Amount: 60000}, steps[2].Settlements[0])
}

// reciprocalEntries: A owes B 10.00 and B owes A 4.00.
func reciprocalEntries() []*expense.ExpenseWithShares {
	return []*expense.ExpenseWithShares{
		entry(2, 100000, map[int64]money.Amount{1: 100000}),
		entry(1, 40000, map[int64]money.Amount{2: 40000}),
	}
}

func TestSteps_TerminalFrameEqualsSimplified(t *testing.T) {
	cases := [][]*expense.ExpenseWithShares{
		threeWayDinner(),
		debtCycle(),
		reciprocalEntries(),
		{
			entry(1, 60000, map[int64]money.Amount{1: 20000, 2: 20000, 3: 20000}),
			entry(2, 90000, map[int64]money.Amount{1: 30000, 2: 30000, 3: 30000}),
			entry(3, 30000, map[int64]money.Amount{1: 10000, 2: 10000, 3: 10000}),
		},
	}

	for _, entries := range cases {
		members := []int64{1, 2, 3}
		steps := Steps(entries, members)
		require.NotEmpty(t, steps)

		simplified := Simplify(balance.Compute(entries, members), members)
		terminal := steps[len(steps)-1].Settlements
		assert.True(t, sameSettlements(terminal, simplified),
			"terminal %v != simplified %v", terminal, simplified)
	}
}

func TestSteps_EveryFrameConservesBalances(t *testing.T) {
	entries := []*expense.ExpenseWithShares{
		entry(1, 60000, map[int64]money.Amount{1: 20000, 2: 20000, 3: 20000}),
		entry(2, 90000, map[int64]money.Amount{1: 30000, 2: 30000, 3: 30000}),
	}
	members := []int64{1, 2, 3}
	want := balance.Compute(entries, members)

	for frameNo, step := range Steps(entries, members) {
		got := make(map[int64]money.Amount, len(members))
		for _, id := range members {
			got[id] = want[id]
		}
		for _, s := range step.Settlements {
			got[s.PayerID] += s.Amount
			got[s.PayeeID] -= s.Amount
		}
		for _, id := range members {
			assert.Equal(t, money.Amount(0), got[id], "frame %d member %d", frameNo, id)
		}
	}
}
