package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/balance"
	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
)

// entry builds an expense row with shares for solver tests. All amounts are
// in main-currency scaled units.
func entry(payerID int64, total money.Amount, shares map[int64]money.Amount) *expense.ExpenseWithShares {
	e := &expense.ExpenseWithShares{
		Expense: &expense.Expense{PayerID: payerID, ConvertedAmount: total},
	}
	for memberID, amount := range shares {
		e.Shares = append(e.Shares, &expense.Share{MemberID: memberID, ConvertedAmount: amount})
	}
	return e
}

// threeWayDinner: Alice (1) pays 90.00 split equally with Bob (2) and
// Charlie (3).
func threeWayDinner() []*expense.ExpenseWithShares {
	return []*expense.ExpenseWithShares{
		entry(1, 900000, map[int64]money.Amount{1: 300000, 2: 300000, 3: 300000}),
	}
}

// debtCycle: A owes B 1000, B owes C 1000, C owes A 1000; every net balance
// is zero.
func debtCycle() []*expense.ExpenseWithShares {
	return []*expense.ExpenseWithShares{
		entry(2, 1000, map[int64]money.Amount{1: 1000}),
		entry(3, 1000, map[int64]money.Amount{2: 1000}),
		entry(1, 1000, map[int64]money.Amount{3: 1000}),
	}
}

func TestNoSimplify_ThreeWayDinner(t *testing.T) {
	got := NoSimplify(threeWayDinner())

	require.Len(t, got, 2)
	assert.Contains(t, got, Settlement{PayerID: 2, PayeeID: 1, Amount: 300000})
	assert.Contains(t, got, Settlement{PayerID: 3, PayeeID: 1, Amount: 300000})
}

func TestNoSimplify_SkipsPayerOwnShareAndZeroShares(t *testing.T) {
	entries := []*expense.ExpenseWithShares{
		entry(1, 10000, map[int64]money.Amount{1: 5000, 2: 5000, 3: 0}),
	}

	got := NoSimplify(entries)
	assert.Equal(t, []Settlement{{PayerID: 2, PayeeID: 1, Amount: 5000}}, got)
}

func TestNoSimplify_AccumulatesSamePairAcrossExpenses(t *testing.T) {
	entries := []*expense.ExpenseWithShares{
		entry(1, 10000, map[int64]money.Amount{2: 10000}),
		entry(1, 2500, map[int64]money.Amount{2: 2500}),
	}

	got := NoSimplify(entries)
	assert.Equal(t, []Settlement{{PayerID: 2, PayeeID: 1, Amount: 12500}}, got)
}

func TestNoSimplify_NeverCancelsReciprocalDebts(t *testing.T) {
	// A owes B 10.00 and B owes A 4.00; both directions stay visible.
	entries := []*expense.ExpenseWithShares{
		entry(2, 100000, map[int64]money.Amount{1: 100000}),
		entry(1, 40000, map[int64]money.Amount{2: 40000}),
	}

	got := NoSimplify(entries)
	assert.Equal(t, []Settlement{
		{PayerID: 1, PayeeID: 2, Amount: 100000},
		{PayerID: 2, PayeeID: 1, Amount: 40000},
	}, got)
}

func TestNoSimplify_EmptyLedger(t *testing.T) {
	assert.Empty(t, NoSimplify(nil))
}

func TestSimplify_ThreeWayDinnerAlreadyMinimal(t *testing.T) {
	members := []int64{1, 2, 3}
	balances := balance.Compute(threeWayDinner(), members)

	got := Simplify(balances, members)
	assert.Equal(t, []Settlement{
		{PayerID: 2, PayeeID: 1, Amount: 300000},
		{PayerID: 3, PayeeID: 1, Amount: 300000},
	}, got)
}

func TestSimplify_DebtCycleVanishes(t *testing.T) {
	members := []int64{1, 2, 3}
	balances := balance.Compute(debtCycle(), members)

	assert.Empty(t, Simplify(balances, members))
	assert.Len(t, NoSimplify(debtCycle()), 3)
}

func TestSimplify_GreedyLargestAgainstLargest(t *testing.T) {
	balances := map[int64]money.Amount{
		1: 80000,   // owed 8.00
		2: 70000,   // owed 7.00
		3: -100000, // owes 10.00
		4: -50000,  // owes 5.00
	}

	got := Simplify(balances, []int64{1, 2, 3, 4})
	assert.Equal(t, []Settlement{
		{PayerID: 3, PayeeID: 1, Amount: 80000},
		{PayerID: 3, PayeeID: 2, Amount: 20000},
		{PayerID: 4, PayeeID: 2, Amount: 50000},
	}, got)
}

func TestSimplify_StableTieBreakByMemberOrder(t *testing.T) {
	balances := map[int64]money.Amount{
		1: 5000,
		2: 5000,
		3: -5000,
		4: -5000,
	}

	got := Simplify(balances, []int64{1, 2, 3, 4})
	assert.Equal(t, []Settlement{
		{PayerID: 3, PayeeID: 1, Amount: 5000},
		{PayerID: 4, PayeeID: 2, Amount: 5000},
	}, got)
}

func TestSimplify_AllSettledYieldsNothing(t *testing.T) {
	balances := map[int64]money.Amount{1: 0, 2: 0, 3: 0}
	assert.Empty(t, Simplify(balances, []int64{1, 2, 3}))
}

func TestSimplify_EveryAmountPositive(t *testing.T) {
	balances := map[int64]money.Amount{1: 123457, 2: -3, 3: -123454}
	for _, s := range Simplify(balances, []int64{1, 2, 3}) {
		assert.Greater(t, s.Amount, money.Amount(0))
	}
}

func TestSimplify_RoundTripReproducesBalances(t *testing.T) {
	entries := []*expense.ExpenseWithShares{
		entry(1, 45678, map[int64]money.Amount{1: 15226, 2: 15226, 3: 15226}),
		entry(2, 100001, map[int64]money.Amount{1: 33334, 2: 33334, 3: 33333}),
		entry(3, 90000, map[int64]money.Amount{1: 30000, 2: 30000, 4: 30000}),
	}
	members := []int64{1, 2, 3, 4}
	balances := balance.Compute(entries, members)

	settlements := Simplify(balances, members)

	// Applying each settlement as a payment drives every balance to zero,
	// i.e. the list is a valid factorization of the balance vector.
	remaining := make(map[int64]money.Amount, len(balances))
	for id, b := range balances {
		remaining[id] = b
	}
	for _, s := range settlements {
		remaining[s.PayerID] += s.Amount
		remaining[s.PayeeID] -= s.Amount
	}
	for id, b := range remaining {
		assert.Equal(t, money.Amount(0), b, "member %d", id)
	}
}

func TestSimplify_NeverMoreTransfersThanNoSimplify(t *testing.T) {
	cases := [][]*expense.ExpenseWithShares{
		threeWayDinner(),
		debtCycle(),
		{
			entry(1, 60000, map[int64]money.Amount{1: 20000, 2: 20000, 3: 20000}),
			entry(2, 30000, map[int64]money.Amount{1: 10000, 2: 10000, 3: 10000}),
			entry(3, 90000, map[int64]money.Amount{1: 30000, 2: 30000, 3: 30000}),
		},
	}

	for _, entries := range cases {
		members := []int64{1, 2, 3}
		simplified := Simplify(balance.Compute(entries, members), members)
		assert.LessOrEqual(t, len(simplified), len(NoSimplify(entries)))
	}
}
