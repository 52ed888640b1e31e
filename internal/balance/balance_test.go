package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
)

func entry(payerID int64, converted money.Amount, shares map[int64]money.Amount) *expense.ExpenseWithShares {
	e := &expense.ExpenseWithShares{
		Expense: &expense.Expense{PayerID: payerID, ConvertedAmount: converted},
	}
	for memberID, amount := range shares {
		e.Shares = append(e.Shares, &expense.Share{MemberID: memberID, ConvertedAmount: amount})
	}
	return e
}

func sumBalances(balances map[int64]money.Amount) money.Amount {
	var total money.Amount
	for _, b := range balances {
		total += b
	}
	return total
}

func TestCompute_EmptyLedger(t *testing.T) {
	balances := Compute(nil, []int64{1, 2, 3})

	assert.Len(t, balances, 3)
	for _, b := range balances {
		assert.Equal(t, money.Amount(0), b)
	}
}

func TestCompute_ThreeWayDinner(t *testing.T) {
	// Alice (1) pays 90.00 split equally among Alice, Bob (2), Charlie (3).
	entries := []*expense.ExpenseWithShares{
		entry(1, 900000, map[int64]money.Amount{1: 300000, 2: 300000, 3: 300000}),
	}

	balances := Compute(entries, []int64{1, 2, 3})

	assert.Equal(t, money.Amount(600000), balances[1])
	assert.Equal(t, money.Amount(-300000), balances[2])
	assert.Equal(t, money.Amount(-300000), balances[3])
	assert.Equal(t, money.Amount(0), sumBalances(balances))
}

func TestCompute_TransferNetsOutDebt(t *testing.T) {
	// Alice pays 90.00 for dinner, then Bob transfers his 30.00 share back.
	// A transfer is a payment event with a single share on the recipient.
	entries := []*expense.ExpenseWithShares{
		entry(1, 900000, map[int64]money.Amount{1: 300000, 2: 300000, 3: 300000}),
		entry(2, 300000, map[int64]money.Amount{1: 300000}),
	}

	balances := Compute(entries, []int64{1, 2, 3})

	assert.Equal(t, money.Amount(300000), balances[1])
	assert.Equal(t, money.Amount(0), balances[2])
	assert.Equal(t, money.Amount(-300000), balances[3])
	assert.Equal(t, money.Amount(0), sumBalances(balances))
}

func TestCompute_ConservationAcrossManyExpenses(t *testing.T) {
	// A pile of uneven multi-payer expenses; balances must still sum to zero.
	entries := []*expense.ExpenseWithShares{
		entry(1, 45678, map[int64]money.Amount{1: 15226, 2: 15226, 3: 15226}),
		entry(2, 100001, map[int64]money.Amount{1: 33334, 2: 33334, 3: 33333}),
		entry(3, 7, map[int64]money.Amount{1: 4, 2: 3}),
		entry(1, 250000, map[int64]money.Amount{2: 250000}),
	}

	balances := Compute(entries, []int64{1, 2, 3})
	assert.Equal(t, money.Amount(0), sumBalances(balances))
}

func TestCompute_OrderIndependent(t *testing.T) {
	a := entry(1, 900000, map[int64]money.Amount{1: 300000, 2: 300000, 3: 300000})
	b := entry(2, 120000, map[int64]money.Amount{1: 60000, 2: 60000})

	forward := Compute([]*expense.ExpenseWithShares{a, b}, []int64{1, 2, 3})
	backward := Compute([]*expense.ExpenseWithShares{b, a}, []int64{1, 2, 3})

	assert.Equal(t, forward, backward)
}
